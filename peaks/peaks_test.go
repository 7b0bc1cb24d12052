package peaks

import (
	"math"
	"testing"
	"time"

	"github.com/ctl-alt-leist/energy-explorer/internal/testutil"
	"github.com/ctl-alt-leist/energy-explorer/series"
)

var testEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

// kinkSeries returns a daily series flat at zero until the kink index, then
// rising with unit slope. Its acceleration is a single unit spike one
// sample before the kink.
func kinkSeries(n, kink int) *series.CapacitySeries {
	capacity := make([]float64, n)
	for i := kink; i < n; i++ {
		capacity[i] = float64(i - kink + 1)
	}
	return &series.CapacitySeries{Time: testutil.DayGrid(testEpoch, n), Capacity: capacity}
}

func TestFindSingleMaximum(t *testing.T) {
	s := kinkSeries(20, 10)

	p := Find(s, day) // width = 3

	if len(p.Maxima) != 1 {
		t.Fatalf("got %d maxima, want 1", len(p.Maxima))
	}
	if len(p.Minima) != 0 {
		t.Fatalf("got %d minima, want 0", len(p.Minima))
	}

	// The acceleration spike sits one sample before the kink.
	wantTime := testEpoch.AddDate(0, 0, 9)
	if !p.Maxima[0].Time.Equal(wantTime) {
		t.Errorf("peak time = %v, want %v", p.Maxima[0].Time, wantTime)
	}
}

func TestFindRefinedValueBounds(t *testing.T) {
	s := kinkSeries(20, 10)

	p := Find(s, day)
	got := p.Maxima[0].Value

	// Percentile refinement must report at least the window median and at
	// most the raw spike value.
	if got < 0 {
		t.Errorf("refined value %v below window median 0", got)
	}
	if got > 1 {
		t.Errorf("refined value %v above raw spike value 1", got)
	}
	if got == 0 {
		t.Errorf("refined value collapsed to zero; high percentile should see the spike")
	}
}

func TestFindMinimum(t *testing.T) {
	// Invert the kink: flat then descending produces a negative spike.
	s := kinkSeries(20, 10)
	for i := range s.Capacity {
		s.Capacity[i] = -s.Capacity[i]
	}

	p := Find(s, day)

	if len(p.Minima) != 1 {
		t.Fatalf("got %d minima, want 1", len(p.Minima))
	}
	if len(p.Maxima) != 0 {
		t.Fatalf("got %d maxima, want 0", len(p.Maxima))
	}
	if p.Minima[0].Value > 0 {
		t.Errorf("refined minimum %v should not be positive", p.Minima[0].Value)
	}
}

func TestFindEmptyAndShortSeries(t *testing.T) {
	for _, n := range []int{0, 1} {
		s := &series.CapacitySeries{
			Time:     testutil.DayGrid(testEpoch, n),
			Capacity: make([]float64, n),
		}

		p := Find(s, day)
		if len(p.Maxima) != 0 || len(p.Minima) != 0 {
			t.Errorf("n=%d: expected no peaks, got %d maxima %d minima", n, len(p.Maxima), len(p.Minima))
		}
	}
}

func TestFindFlatSeriesHasNoPeaks(t *testing.T) {
	s := &series.CapacitySeries{
		Time:     testutil.DayGrid(testEpoch, 30),
		Capacity: testutil.Constant(30, 7),
	}

	p := Find(s, day)

	// Strict comparison: a constant acceleration has no isolated extrema.
	if len(p.Maxima) != 0 || len(p.Minima) != 0 {
		t.Fatalf("expected no peaks on flat series, got %d maxima %d minima", len(p.Maxima), len(p.Minima))
	}
}

func TestFindOrderedByTime(t *testing.T) {
	// Two kinks far enough apart to both register with width 3.
	capacity := make([]float64, 40)
	slope := 0.0
	for i := 1; i < len(capacity); i++ {
		if i == 10 || i == 30 {
			slope += 1
		}
		capacity[i] = capacity[i-1] + slope
	}
	s := &series.CapacitySeries{Time: testutil.DayGrid(testEpoch, 40), Capacity: capacity}

	p := Find(s, day)

	if len(p.Maxima) < 2 {
		t.Fatalf("expected at least 2 maxima, got %d", len(p.Maxima))
	}
	for i := 1; i < len(p.Maxima); i++ {
		if !p.Maxima[i].Time.After(p.Maxima[i-1].Time) {
			t.Fatalf("maxima not in ascending time order at %d", i)
		}
	}
}

func TestLocalExtremaWindowClipping(t *testing.T) {
	data := []float64{5, 1, 1, 1, 1}

	// Index 0 beats everything inside its clipped window.
	idx := localExtrema(data, 3, func(a, b float64) bool { return a > b })
	if len(idx) != 1 || idx[0] != 0 {
		t.Fatalf("got %v, want [0]", idx)
	}
}

func TestRefineWindowMedianProperty(t *testing.T) {
	accel := []float64{0, 0, 2, 9, 2, 0, 0}
	times := testutil.DayGrid(testEpoch, len(accel))

	got := refine(times, accel, []int{3}, 2, 0.95)
	if len(got) != 1 {
		t.Fatalf("got %d peaks, want 1", len(got))
	}

	// Window [1,5): {0, 2, 9, 2}; the 95th percentile is at least the
	// median 2 and no more than the raw spike 9.
	if got[0].Value < 2 || got[0].Value > 9 {
		t.Errorf("refined value %v outside [median, max] = [2, 9]", got[0].Value)
	}
}

func TestNoPeakSentinel(t *testing.T) {
	var p AccelerationPeaks

	for _, pk := range []Peak{p.Max(), p.Min()} {
		if !pk.Time.IsZero() {
			t.Errorf("sentinel time = %v, want zero", pk.Time)
		}
		if !math.IsNaN(pk.Value) {
			t.Errorf("sentinel value = %v, want NaN", pk.Value)
		}
	}
}
