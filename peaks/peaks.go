package peaks

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ctl-alt-leist/energy-explorer/series"
)

// Peak is a detected extremum: the timestamp of the candidate sample and
// the percentile-refined acceleration value reported for it.
type Peak struct {
	Time  time.Time
	Value float64
}

// AccelerationPeaks holds the detected maxima and minima of a series'
// acceleration, each in ascending time order. Values are immutable once
// produced by Find.
type AccelerationPeaks struct {
	Maxima []Peak
	Minima []Peak
}

// Find identifies isolated positive and negative peaks in the acceleration
// of a smoothed series. sigma is the standard deviation used for the
// Gaussian smoothing; it sets the minimum separation between peaks via the
// window half-width w = 3*round(sigma/dt), where dt is the grid spacing.
//
// A sample qualifies as a maximum when it is strictly greater than every
// other acceleration value in the window [i-w, i+w] clipped to the array
// bounds; minima are symmetric. Series shorter than two samples produce no
// peaks.
func Find(s *series.CapacitySeries, sigma time.Duration) AccelerationPeaks {
	if s.Len() < 2 {
		return AccelerationPeaks{}
	}

	dt := s.Time[1].Sub(s.Time[0])
	width := 3 * int(math.Round(sigma.Seconds()/dt.Seconds()))
	if width < 1 {
		width = 1
	}

	accel := s.Acceleration()

	maxIdx := localExtrema(accel, width, func(a, b float64) bool { return a > b })
	minIdx := localExtrema(accel, width, func(a, b float64) bool { return a < b })

	return AccelerationPeaks{
		Maxima: refine(s.Time, accel, maxIdx, width, 0.95),
		Minima: refine(s.Time, accel, minIdx, width, 0.05),
	}
}

// localExtrema returns indices whose value wins the given strict comparison
// against every other sample in the window [i-width, i+width], clipped at
// the array bounds. Indices come out in ascending order.
func localExtrema(data []float64, width int, wins func(a, b float64) bool) []int {
	var idx []int

	for i := range data {
		lo := i - width
		if lo < 0 {
			lo = 0
		}
		hi := i + width
		if hi > len(data)-1 {
			hi = len(data) - 1
		}

		isExtremum := true
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			if !wins(data[i], data[j]) {
				isExtremum = false
				break
			}
		}

		if isExtremum {
			idx = append(idx, i)
		}
	}

	return idx
}

// refine reports each candidate at the given quantile of its surrounding
// acceleration window [max(0,i-width), min(n,i+width)). The candidate's
// timestamp is preserved.
func refine(times []time.Time, accel []float64, idx []int, width int, q float64) []Peak {
	peaks := make([]Peak, 0, len(idx))

	for _, i := range idx {
		lo := i - width
		if lo < 0 {
			lo = 0
		}
		hi := i + width
		if hi > len(accel) {
			hi = len(accel)
		}

		window := make([]float64, hi-lo)
		copy(window, accel[lo:hi])
		sort.Float64s(window)

		peaks = append(peaks, Peak{
			Time:  times[i],
			Value: stat.Quantile(q, stat.LinInterp, window, nil),
		})
	}

	return peaks
}
