// Package series provides the cumulative-capacity time series at the heart
// of the analysis pipeline.
//
// A [CapacitySeries] pairs a strictly increasing timestamp slice with a
// capacity slice of equal length. It is built from the cumulative sum of
// capacity observations for one group (for example all facilities sharing a
// zipcode) and regularized onto a uniform grid by [CapacitySeries.Smooth]
// before any derived quantity is computed.
//
// # Smoothing
//
// Smooth resamples the irregular observations onto a uniform grid via linear
// interpolation with flat boundary extension, convolves with a normalized
// Gaussian kernel, trims the kernel radius off both ends (those samples are
// contaminated by the convolution edge), and clamps negative values to zero.
// Smoothing is the only operation that mutates a series; everything else is
// a pure function of the current state.
//
// # Acceleration
//
// [CapacitySeries.Acceleration] returns the second discrete difference of
// the capacity, edge-padded to the series length. Acceleration strips the
// slow-moving trend from a cumulative series and isolates burst dynamics,
// which is what the peak detection, correlation, and similarity packages
// operate on.
//
// # Algorithm selection
//
// The Gaussian convolution uses direct time-domain evaluation for short
// kernels and an FFT-based path (via algo-fft) once the kernel reaches 64
// taps, mirroring the usual crossover point for same-length convolution.
package series
