package similarity

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ctl-alt-leist/energy-explorer/series"
)

// epsilon guards divisions against zero-norm acceleration vectors.
const epsilon = 1e-9

// Cosine returns the cosine similarity of the two series' acceleration
// vectors, truncated to the shorter length. The result is in [-1, 1] up to
// the epsilon in the denominator; the raw self-similarity of a non-zero
// series is 1 within floating tolerance.
func Cosine(a, b *series.CapacitySeries) float64 {
	accelA := a.Acceleration()
	accelB := b.Acceleration()

	n := len(accelA)
	if len(accelB) < n {
		n = len(accelB)
	}
	accelA = accelA[:n]
	accelB = accelB[:n]

	dot := vecmath.DotProduct(accelA, accelB)
	normA := math.Sqrt(vecmath.DotProduct(accelA, accelA))
	normB := math.Sqrt(vecmath.DotProduct(accelB, accelB))

	return dot / (normA*normB + epsilon)
}

// Matrix builds the symmetric pairwise cosine similarity matrix for an
// ordered collection of series. Both triangles are filled.
func Matrix(all []*series.CapacitySeries) [][]float64 {
	n := len(all)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := Cosine(all[i], all[j])
			m[i][j] = v
			m[j][i] = v
		}
	}

	return m
}

// NormalizeDiagonal divides each row by that row's diagonal entry plus
// epsilon, in place. With raw cosine values the diagonal is already close
// to 1; the normalization pins it there exactly up to epsilon so
// off-diagonal entries read as fractions of self-similarity.
func NormalizeDiagonal(m [][]float64) {
	for i, row := range m {
		d := m[i][i] + epsilon
		for j := range row {
			row[j] /= d
		}
	}
}

// MostSimilarPair returns the indices and value of the greatest matrix
// entry strictly below the cutoff, scanning in row-major order so ties
// keep the first occurrence. ok is false when no entry qualifies.
// A cutoff just under 1 excludes self-similarity cells.
func MostSimilarPair(m [][]float64, below float64) (i, j int, value float64, ok bool) {
	value = math.Inf(-1)

	for r, row := range m {
		for c, v := range row {
			if v < below && v > value {
				i, j, value = r, c, v
				ok = true
			}
		}
	}

	if !ok {
		return 0, 0, 0, false
	}

	return i, j, value, true
}
