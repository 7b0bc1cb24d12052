package correlate

import (
	"sync"
	"time"

	"github.com/ctl-alt-leist/energy-explorer/series"
)

// hoursPerYear converts a shift duration to years.
const hoursPerYear = 365.25 * 24

// Config parameterizes pairwise correlation matrix construction.
type Config struct {
	// MaxShift bounds the search window in grid samples.
	MaxShift int
	// Sigma is the Gaussian smoothing sigma the series were smoothed with.
	Sigma time.Duration
	// Delta is the grid spacing of the smoothed series.
	Delta time.Duration
	// Workers > 1 distributes rows across that many goroutines. Zero or
	// one computes serially.
	Workers int
}

// Matrices builds the pairwise correlation and shift matrices for an
// ordered collection of smoothed series.
//
// Only the lower triangle including the diagonal is filled; entries for
// pairs with no valid shift stay zero. Shifts are reported in years. The
// correlation matrix is normalized by its greatest entry as a final
// whole-matrix step, so the best-aligned pair scores 1.
func Matrices(all []*series.CapacitySeries, cfg Config) (corr, shift [][]float64) {
	n := len(all)
	corr = newMatrix(n)
	shift = newMatrix(n)

	fillRow := func(m int) {
		for k := 0; k <= m; k++ {
			score, s, ok := Pair(all[m], all[k], cfg.MaxShift, cfg.Sigma, cfg.Delta)
			if !ok {
				continue
			}
			corr[m][k] = score
			shift[m][k] = float64(s) * cfg.Delta.Hours() / hoursPerYear
		}
	}

	if cfg.Workers > 1 {
		var wg sync.WaitGroup
		rows := make(chan int)

		for w := 0; w < cfg.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for m := range rows {
					fillRow(m)
				}
			}()
		}

		for m := 0; m < n; m++ {
			rows <- m
		}
		close(rows)
		wg.Wait()
	} else {
		for m := 0; m < n; m++ {
			fillRow(m)
		}
	}

	normalizeByMax(corr)

	return corr, shift
}

// Mirror copies the lower triangle of a square matrix onto the upper
// triangle, producing a symmetric matrix in place.
func Mirror(m [][]float64) {
	for i := range m {
		for j := 0; j < i; j++ {
			m[j][i] = m[i][j]
		}
	}
}

func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// normalizeByMax divides every entry by the greatest entry of the matrix.
// A non-positive maximum leaves the matrix untouched.
func normalizeByMax(m [][]float64) {
	var max float64
	for _, row := range m {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}

	if max <= 0 {
		return
	}

	for _, row := range m {
		for j := range row {
			row[j] /= max
		}
	}
}
