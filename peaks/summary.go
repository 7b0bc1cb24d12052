package peaks

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// daysPerYear converts a mean peak gap in days to events per year.
const daysPerYear = 365.25

// NoPeak is the sentinel returned when a peak list is empty: a zero
// timestamp and a NaN value.
func NoPeak() Peak {
	return Peak{Time: time.Time{}, Value: math.NaN()}
}

// Max returns the maxima entry with the greatest value, or [NoPeak] when no
// maxima were detected. Ties keep the earliest occurrence.
func (p AccelerationPeaks) Max() Peak {
	if len(p.Maxima) == 0 {
		return NoPeak()
	}

	best := p.Maxima[0]
	for _, pk := range p.Maxima[1:] {
		if pk.Value > best.Value {
			best = pk
		}
	}

	return best
}

// Min returns the minima entry with the least value, or [NoPeak] when no
// minima were detected. Ties keep the earliest occurrence.
func (p AccelerationPeaks) Min() Peak {
	if len(p.Minima) == 0 {
		return NoPeak()
	}

	best := p.Minima[0]
	for _, pk := range p.Minima[1:] {
		if pk.Value < best.Value {
			best = pk
		}
	}

	return best
}

// Frequency returns the recurrence rate of maxima in events per year,
// computed as daysPerYear over the mean gap between consecutive maxima in
// whole days. It returns 0 when fewer than two maxima exist or the mean gap
// is not positive.
func (p AccelerationPeaks) Frequency() float64 {
	if len(p.Maxima) < 2 {
		return 0.0
	}

	gaps := make([]float64, len(p.Maxima)-1)
	for i := 1; i < len(p.Maxima); i++ {
		gap := p.Maxima[i].Time.Sub(p.Maxima[i-1].Time)
		gaps[i-1] = float64(int(gap.Hours() / 24)) // truncate to whole days
	}

	meanGap := stat.Mean(gaps, nil)
	if meanGap <= 0 {
		return 0.0
	}

	return daysPerYear / meanGap
}
