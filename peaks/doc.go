// Package peaks detects isolated extrema in the acceleration of a smoothed
// capacity series.
//
// [Find] scans the acceleration for samples that are strictly greater (or
// less) than every other value inside a window derived from the smoothing
// sigma, then refines each candidate's reported value to the 95th (maxima)
// or 5th (minima) percentile of its window. Percentile refinement keeps the
// candidate's timestamp while suppressing single-sample spikes.
//
// The resulting [AccelerationPeaks] value is immutable and carries no
// reference back to the series it was derived from. Its accessors reduce
// the peak lists to a dominant maximum, a dominant minimum, and a
// recurrence frequency in events per year.
package peaks
