package testutil

import "time"

// DayGrid returns n timestamps starting at start, spaced one day apart.
func DayGrid(start time.Time, n int) []time.Time {
	grid := make([]time.Time, n)
	for i := range grid {
		grid[i] = start.AddDate(0, 0, i)
	}
	return grid
}

// Ramp returns a linearly increasing slice from 0 with the given step.
func Ramp(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// Constant returns a slice of n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
