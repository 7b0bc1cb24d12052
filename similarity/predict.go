package similarity

import (
	"math"

	"github.com/ctl-alt-leist/energy-explorer/series"
)

// capacityBound clamps each predicted value; runaway accumulation
// saturates instead of overflowing.
const capacityBound = 1e9

// Predict projects the target series forward using the donor's capacity
// derivative, scaled by the similarity coefficient between the pair.
//
// The target is deep-copied and its capacity zeroed from the midpoint
// onward. Walking forward from one sample before the midpoint, each step
// adds 2*coeff² times the donor's local derivative to the previous
// predicted value. coeff is clamped to [-1, 1] first; non-finite results
// are replaced by zero and every stored value is clamped to ±1e9. Past the
// donor's end the derivative is taken as zero and the projection holds
// flat.
//
// With coeff == 0 the projected tail is exactly the last pre-midpoint
// value.
func Predict(donor, target *series.CapacitySeries, coeff float64) *series.CapacitySeries {
	predicted := target.Clone()
	capacity := predicted.Capacity

	mid := len(capacity) / 2
	for t := mid; t < len(capacity); t++ {
		capacity[t] = 0
	}

	coeff = clamp(coeff, -1, 1)
	gain := 2 * coeff * coeff

	for t := mid - 1; t >= 0 && t < len(capacity)-1; t++ {
		var dc float64
		if t+1 < len(donor.Capacity) {
			dc = donor.Capacity[t+1] - donor.Capacity[t]
		}

		next := capacity[t] + gain*dc
		if math.IsNaN(next) || math.IsInf(next, 0) {
			next = 0
		}

		capacity[t+1] = clamp(next, -capacityBound, capacityBound)
	}

	return predicted
}

// Bounds returns lower and upper confidence envelopes for a predicted
// series. The envelope half-width grows with the predicted value itself
// and shrinks as the similarity coefficient approaches ±1:
// alpha = 1 - coeff²/2, bounds = value ± alpha*value/2.
func Bounds(predicted *series.CapacitySeries, coeff float64) (lower, upper []float64) {
	coeff = clamp(coeff, -1, 1)
	alpha := 1 - 0.5*coeff*coeff

	lower = make([]float64, len(predicted.Capacity))
	upper = make([]float64, len(predicted.Capacity))

	for i, v := range predicted.Capacity {
		half := alpha * v / 2
		lower[i] = v - half
		upper[i] = v + half
	}

	return lower, upper
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
