package series

import (
	"math"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Smooth resamples the series onto a uniform grid and applies Gaussian
// smoothing, replacing Time and Capacity in place.
//
// The grid holds N = floor((end-start)/delta) timestamps starting at start
// with step delta. Capacity is linearly interpolated onto the grid; grid
// points outside the original time range take the nearest boundary value.
// The interpolated sequence is convolved with a normalized Gaussian kernel
// of radius r = round(3*sigma/delta) samples, r samples are trimmed off
// each end, and negative values are clamped to zero.
//
// Degenerate configurations never fail: N <= 0 or N <= 2r leaves the series
// empty, which callers must treat as "no usable data in range".
func (s *CapacitySeries) Smooth(start, end time.Time, delta, sigma time.Duration) {
	if delta <= 0 {
		s.Time, s.Capacity = nil, nil
		return
	}

	n := int(end.Sub(start) / delta)
	if n <= 0 {
		s.Time, s.Capacity = nil, nil
		return
	}

	grid := make([]time.Time, n)
	for i := range grid {
		grid[i] = start.Add(time.Duration(i) * delta)
	}

	interpolated := s.resampleLinear(grid)

	kernel, radius := gaussianKernel(delta, sigma)
	smoothed := convolveSame(interpolated, kernel, radius)

	// The first and last radius samples are contaminated by the convolution
	// edge; discard them even when that empties the series.
	if n <= 2*radius {
		s.Time, s.Capacity = nil, nil
		return
	}

	trimmedTime := grid[radius : n-radius]
	trimmedCapacity := smoothed[radius : n-radius]

	for i, v := range trimmedCapacity {
		if v < 0 {
			trimmedCapacity[i] = 0
		}
	}

	s.Time = trimmedTime
	s.Capacity = trimmedCapacity
}

// resampleLinear interpolates the series capacity onto the given grid.
// Grid points before the first or after the last observation take the
// boundary value (flat extension, no extrapolation). An empty series
// resamples to all zeros.
func (s *CapacitySeries) resampleLinear(grid []time.Time) []float64 {
	out := make([]float64, len(grid))
	if len(s.Time) == 0 {
		return out
	}

	first, last := s.Time[0], s.Time[len(s.Time)-1]
	j := 0

	for i, t := range grid {
		switch {
		case !t.After(first):
			out[i] = s.Capacity[0]
		case !t.Before(last):
			out[i] = s.Capacity[len(s.Capacity)-1]
		default:
			// Advance to the segment containing t. Grid times are
			// increasing, so j never moves backwards.
			for s.Time[j+1].Before(t) {
				j++
			}

			t0 := s.Time[j]
			span := s.Time[j+1].Sub(t0).Seconds()
			frac := t.Sub(t0).Seconds() / span
			out[i] = s.Capacity[j] + frac*(s.Capacity[j+1]-s.Capacity[j])
		}
	}

	return out
}

// gaussianKernel builds a sum-normalized Gaussian kernel sampled at delta
// spacing with standard deviation sigma. The kernel has 2r+1 taps where
// r = round(3*sigma/delta). A non-positive sigma degenerates to the
// identity kernel.
func gaussianKernel(delta, sigma time.Duration) (kernel []float64, radius int) {
	if sigma <= 0 {
		return []float64{1}, 0
	}

	radius = int(math.Round(3 * sigma.Seconds() / delta.Seconds()))
	kernel = make([]float64, 2*radius+1)

	for k := -radius; k <= radius; k++ {
		x := float64(k) * delta.Seconds() / sigma.Seconds()
		kernel[k+radius] = math.Exp(-0.5 * x * x)
	}

	vecmath.ScaleBlockInPlace(kernel, 1/vecmath.Sum(kernel))

	return kernel, radius
}

// fftThreshold is the kernel length at which same-length convolution
// switches from direct evaluation to the FFT path.
const fftThreshold = 64

// convolveSame computes the same-length centered convolution of x with an
// odd-length kernel of the given radius. Samples outside x are treated as
// zero.
func convolveSame(x, kernel []float64, radius int) []float64 {
	if len(kernel) >= fftThreshold {
		if out, err := convolveSameFFT(x, kernel, radius); err == nil {
			return out
		}
		// Fall through to the direct path on FFT planning failure.
	}

	return convolveSameDirect(x, kernel, radius)
}

func convolveSameDirect(x, kernel []float64, radius int) []float64 {
	n := len(x)
	m := len(kernel)
	out := make([]float64, n)

	for i := range out {
		xLo := i - radius
		kLo := 0
		if xLo < 0 {
			kLo = -xLo
			xLo = 0
		}

		xHi := i - radius + m
		kHi := m
		if xHi > n {
			kHi -= xHi - n
			xHi = n
		}

		if xLo < xHi {
			out[i] = vecmath.DotProduct(kernel[kLo:kHi], x[xLo:xHi])
		}
	}

	return out
}

func convolveSameFFT(x, kernel []float64, radius int) ([]float64, error) {
	n := len(x)
	m := len(kernel)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}

	xPadded := make([]complex128, fftSize)
	kPadded := make([]complex128, fftSize)
	for i, v := range x {
		xPadded[i] = complex(v, 0)
	}
	for i, v := range kernel {
		kPadded[i] = complex(v, 0)
	}

	xFreq := make([]complex128, fftSize)
	kFreq := make([]complex128, fftSize)

	if err := plan.Forward(xFreq, xPadded); err != nil {
		return nil, err
	}
	if err := plan.Forward(kFreq, kPadded); err != nil {
		return nil, err
	}

	productFreq := make([]complex128, fftSize)
	for i := range productFreq {
		productFreq[i] = xFreq[i] * kFreq[i]
	}

	productTime := make([]complex128, fftSize)
	if err := plan.Inverse(productTime, productFreq); err != nil {
		return nil, err
	}

	// Full linear convolution has length n+m-1; the centered same-length
	// result starts at the kernel radius.
	out := make([]float64, n)
	for i := range out {
		out[i] = real(productTime[i+radius])
	}

	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
