package series

import (
	"testing"
	"time"

	"github.com/ctl-alt-leist/energy-explorer/internal/testutil"
)

const day = 24 * time.Hour

func TestSmoothGridSpacingAndLength(t *testing.T) {
	times := dayGrid(50)
	capacity := testutil.Ramp(50, 2)
	s := &CapacitySeries{Time: times, Capacity: capacity}

	delta := day
	sigma := 2 * day // radius r = round(3*2) = 6
	start := times[0]
	end := times[0].AddDate(0, 0, 40) // N = 40

	s.Smooth(start, end, delta, sigma)

	wantLen := 40 - 2*6
	if s.Len() != wantLen {
		t.Fatalf("smoothed length %d, want %d", s.Len(), wantLen)
	}
	if len(s.Time) != len(s.Capacity) {
		t.Fatalf("time/capacity length mismatch: %d vs %d", len(s.Time), len(s.Capacity))
	}

	for i := 1; i < len(s.Time); i++ {
		if got := s.Time[i].Sub(s.Time[i-1]); got != delta {
			t.Fatalf("grid spacing at %d: got %v, want %v", i, got, delta)
		}
	}
}

func TestSmoothConstantIsPreserved(t *testing.T) {
	times := dayGrid(60)
	s := &CapacitySeries{Time: times, Capacity: testutil.Constant(60, 5)}

	s.Smooth(times[0], times[0].AddDate(0, 0, 50), day, 2*day)

	if s.Len() == 0 {
		t.Fatal("expected non-empty result")
	}
	// The kernel is sum-normalized and the trimmed region is fully covered
	// by real samples, so a constant input stays constant.
	testutil.RequireSliceNearlyEqual(t, s.Capacity, testutil.Constant(s.Len(), 5), 1e-9)
}

func TestSmoothConstantPreservedThroughFFTPath(t *testing.T) {
	// sigma chosen so the kernel reaches 2*32+1 = 65 taps and the FFT
	// convolution path is exercised.
	times := dayGrid(1000)
	s := &CapacitySeries{Time: times, Capacity: testutil.Constant(1000, 3)}

	delta := 24 * time.Hour
	sigma := 256 * time.Hour // r = round(3*256/24) = 32

	s.Smooth(times[0], times[0].AddDate(0, 0, 900), delta, sigma)

	wantLen := 900 - 2*32
	if s.Len() != wantLen {
		t.Fatalf("smoothed length %d, want %d", s.Len(), wantLen)
	}
	testutil.RequireSliceNearlyEqual(t, s.Capacity, testutil.Constant(s.Len(), 3), 1e-6)
}

func TestSmoothNeverNegative(t *testing.T) {
	times := dayGrid(40)
	capacity := make([]float64, 40)
	for i := range capacity {
		// Oscillating input that convolves to values dipping below zero
		// before clamping.
		if i%2 == 0 {
			capacity[i] = -10
		} else {
			capacity[i] = 1
		}
	}
	s := &CapacitySeries{Time: times, Capacity: capacity}

	s.Smooth(times[0], times[0].AddDate(0, 0, 35), day, day)

	testutil.RequireNonNegative(t, s.Capacity)
	testutil.RequireFinite(t, s.Capacity)
}

func TestSmoothShortGridYieldsEmpty(t *testing.T) {
	// Grid of 4 points with kernel radius 3 leaves nothing after trimming.
	// This mirrors the documented edge case: empty result, no panic.
	times := dayGrid(5)
	s := &CapacitySeries{Time: times, Capacity: []float64{0, 10, 30, 30, 30}}

	s.Smooth(times[0], times[0].AddDate(0, 0, 4), day, day)

	if s.Len() != 0 {
		t.Fatalf("expected empty series, got length %d", s.Len())
	}
	if len(s.Time) != 0 {
		t.Fatalf("expected empty time slice, got length %d", len(s.Time))
	}
}

func TestSmoothEmptyRange(t *testing.T) {
	times := dayGrid(10)
	s := &CapacitySeries{Time: times, Capacity: testutil.Ramp(10, 1)}

	// end before start: N <= 0 must produce an empty series, not an error.
	s.Smooth(times[5], times[0], day, day)

	if s.Len() != 0 {
		t.Fatalf("expected empty series, got length %d", s.Len())
	}
}

func TestSmoothZeroDelta(t *testing.T) {
	times := dayGrid(10)
	s := &CapacitySeries{Time: times, Capacity: testutil.Ramp(10, 1)}

	s.Smooth(times[0], times[9], 0, day)

	if s.Len() != 0 {
		t.Fatalf("expected empty series for zero delta, got length %d", s.Len())
	}
}

func TestResampleLinearFlatExtension(t *testing.T) {
	times := []time.Time{testEpoch.AddDate(0, 0, 5), testEpoch.AddDate(0, 0, 7)}
	s := &CapacitySeries{Time: times, Capacity: []float64{10, 20}}

	grid := testutil.DayGrid(testEpoch, 12)
	got := s.resampleLinear(grid)

	want := []float64{10, 10, 10, 10, 10, 10, 15, 20, 20, 20, 20, 20}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestGaussianKernelNormalized(t *testing.T) {
	kernel, radius := gaussianKernel(day, 3*day)

	if radius != 9 {
		t.Fatalf("radius = %d, want 9", radius)
	}
	if len(kernel) != 2*radius+1 {
		t.Fatalf("kernel length = %d, want %d", len(kernel), 2*radius+1)
	}

	var sum float64
	for _, v := range kernel {
		sum += v
	}
	testutil.RequireNear(t, sum, 1, 1e-12)

	// Symmetric with the peak at the center.
	for k := 0; k < radius; k++ {
		testutil.RequireNear(t, kernel[k], kernel[len(kernel)-1-k], 1e-12)
	}
	if kernel[radius] <= kernel[0] {
		t.Fatalf("center weight %v not greater than edge weight %v", kernel[radius], kernel[0])
	}
}

func TestConvolveSameMatchesDirect(t *testing.T) {
	// Force both paths on the same input and compare.
	x := testutil.Ramp(500, 0.5)
	kernel, radius := gaussianKernel(day, 11*day) // 67 taps, FFT eligible

	direct := convolveSameDirect(x, kernel, radius)
	viaFFT, err := convolveSameFFT(x, kernel, radius)
	if err != nil {
		t.Fatalf("fft convolution failed: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, viaFFT, direct, 1e-8)
}
