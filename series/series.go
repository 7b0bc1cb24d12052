package series

import (
	"errors"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Errors returned by series construction.
var (
	ErrLengthMismatch = errors.New("series: time and capacity length mismatch")
	ErrUnorderedTime  = errors.New("series: timestamps not strictly increasing")
)

// CapacitySeries is a time series of cumulative capacity for one group.
//
// Time is strictly increasing and len(Time) == len(Capacity) at all times.
// The zero value is an empty, usable series. Smooth is the only mutating
// operation; it atomically replaces both slices.
type CapacitySeries struct {
	Time     []time.Time
	Capacity []float64
}

// New validates and wraps the given timestamp and capacity slices.
// The slices are retained, not copied.
func New(times []time.Time, capacity []float64) (*CapacitySeries, error) {
	if len(times) != len(capacity) {
		return nil, ErrLengthMismatch
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, ErrUnorderedTime
		}
	}

	return &CapacitySeries{Time: times, Capacity: capacity}, nil
}

// Len returns the number of samples in the series.
func (s *CapacitySeries) Len() int {
	return len(s.Capacity)
}

// Clone returns a deep copy of the series. Mutating the copy never affects
// the original.
func (s *CapacitySeries) Clone() *CapacitySeries {
	c := &CapacitySeries{
		Time:     make([]time.Time, len(s.Time)),
		Capacity: make([]float64, len(s.Capacity)),
	}
	copy(c.Time, s.Time)
	copy(c.Capacity, s.Capacity)

	return c
}

// Acceleration returns the second discrete difference of the capacity,
// padded one value at each end by edge replication so the result has the
// same length as the series. It is recomputed on every call because the
// series may be re-smoothed between calls.
//
// Series shorter than three samples have no curvature; the result is all
// zeros of the series length.
func (s *CapacitySeries) Acceleration() []float64 {
	n := len(s.Capacity)
	accel := make([]float64, n)
	if n < 3 {
		return accel
	}

	for i := 0; i < n-2; i++ {
		accel[i+1] = s.Capacity[i+2] - 2*s.Capacity[i+1] + s.Capacity[i]
	}

	// Edge replication.
	accel[0] = accel[1]
	accel[n-1] = accel[n-2]

	return accel
}

// Normalize scales the capacity so its largest magnitude becomes 1.
// A series whose capacity is all zero is left unchanged.
func (s *CapacitySeries) Normalize() {
	peak := vecmath.MaxAbs(s.Capacity)
	if peak == 0 {
		return
	}

	vecmath.ScaleBlockInPlace(s.Capacity, 1/peak)
}
