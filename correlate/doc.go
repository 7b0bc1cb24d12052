// Package correlate aligns pairs of capacity series by template-matching
// their acceleration profiles.
//
// [Pair] extracts a fixed-width window (the kernel) around the reference
// series' global acceleration maximum and slides it across the candidate's
// acceleration within a bounded shift range, scoring each shift with the
// raw inner product. Out-of-bounds shifts are skipped silently; a pair with
// no valid shift reports ok == false rather than an error, and the caller
// decides how to represent the absence.
//
// The returned score is deliberately unnormalized: scores from pairs of
// different energy scale are only comparable after a whole-matrix
// normalization, which [Matrices] applies as an explicit final step.
//
// Matrix construction visits each lower-triangular pair once, O(N²) pairs
// at O(maxShift·window) each. Pair computations touch disjoint matrix
// cells, so Matrices optionally fans the rows out over a worker pool.
package correlate
