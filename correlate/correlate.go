package correlate

import (
	"math"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ctl-alt-leist/energy-explorer/series"
)

// Pair computes the best-aligning time shift between two series'
// acceleration profiles within [-maxShift, maxShift] grid samples.
//
// The kernel is the reference acceleration in a window of half-width
// w = round(3*sigma/delta) around the reference's global acceleration
// maximum, with non-finite values replaced by zero. Each candidate window
// whose center stays in bounds is scored with the unnormalized inner
// product; the highest score wins, ties keeping the first shift in
// ascending order.
//
// ok is false when no shift produced a score, which happens when every
// candidate window falls out of bounds or the kernel was clipped by the
// reference's own bounds. Callers typically leave the matrix cell unset in
// that case.
func Pair(ref, cand *series.CapacitySeries, maxShift int, sigma, delta time.Duration) (score float64, shift int, ok bool) {
	accelRef := ref.Acceleration()
	accelCand := cand.Acceleration()
	if len(accelRef) == 0 || len(accelCand) == 0 {
		return 0, 0, false
	}

	peak := argmax(accelRef)
	width := int(math.Round(3 * sigma.Seconds() / delta.Seconds()))

	kernel := kernelAround(accelRef, peak, width)

	bestScore := math.Inf(-1)
	bestShift := 0
	found := false

	for s := -maxShift; s <= maxShift; s++ {
		center := peak + s
		if center-width < 0 || center+width >= len(accelCand) {
			continue
		}

		segment := accelCand[center-width : center+width]
		if len(segment) != len(kernel) {
			continue
		}

		v := vecmath.DotProduct(kernel, segment)
		if v > bestScore {
			bestScore = v
			bestShift = s
			found = true
		}
	}

	if !found {
		return 0, 0, false
	}

	return bestScore, bestShift, true
}

// kernelAround copies the window [peak-width, peak+width) of accel, clipped
// at the array bounds, replacing non-finite values with zero.
func kernelAround(accel []float64, peak, width int) []float64 {
	lo := peak - width
	if lo < 0 {
		lo = 0
	}
	hi := peak + width
	if hi > len(accel) {
		hi = len(accel)
	}

	kernel := make([]float64, hi-lo)
	for i, v := range accel[lo:hi] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		kernel[i] = v
	}

	return kernel
}

// argmax returns the index of the greatest value, first occurrence winning.
func argmax(data []float64) int {
	idx := 0
	best := data[0]
	for i, v := range data {
		if v > best {
			best = v
			idx = i
		}
	}
	return idx
}
