// Command capacity-explorer runs the full capacity analysis pipeline over
// an interconnection-records CSV file.
//
// It selects the configured groups, builds and smooths their cumulative
// capacity series, reports acceleration peaks per group, and prints the
// pairwise correlation, shift, and similarity matrices along with a
// forward prediction for the most similar pair.
//
// Examples:
//
//	capacity-explorer --fuel Solar --sector Residential records.csv
//	capacity-explorer --fuel Solar --fuel Battery --groups 10 --from lowest records.csv
//	capacity-explorer --sigma-days 30 --geo zipcodes.csv records.csv
package main

import (
	"fmt"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/ctl-alt-leist/energy-explorer/catalog"
	"github.com/ctl-alt-leist/energy-explorer/correlate"
	"github.com/ctl-alt-leist/energy-explorer/geo"
	"github.com/ctl-alt-leist/energy-explorer/peaks"
	"github.com/ctl-alt-leist/energy-explorer/series"
	"github.com/ctl-alt-leist/energy-explorer/similarity"
)

var version = "No version provided"

var log = logrus.New()

type argSpec struct {
	Records   string   `arg:"positional,required" help:"CSV file of interconnection records"`
	GeoTable  string   `arg:"--geo" help:"Optional zipcode-to-coordinates CSV table"`
	FuelTypes []string `arg:"--fuel,separate" help:"Fuel type filter; repeat for multiple"`
	Exclusive bool     `arg:"--exclusive" help:"Require the exact fuel-type set instead of any overlap"`
	Sector    string   `arg:"--sector" default:"Residential" help:"Customer sector filter"`
	Groups    int      `arg:"--groups" default:"5" help:"Number of zipcode groups to analyze"`
	From      string   `arg:"--from" default:"highest" help:"Take groups from the highest, middle, or lowest capacity ranking"`
	StartDate string   `arg:"--start" default:"2001-01-01" help:"Analysis range start (YYYY-MM-DD)"`
	EndDate   string   `arg:"--end" default:"2025-01-01" help:"Analysis range end (YYYY-MM-DD)"`
	DeltaDays int      `arg:"--delta-days" default:"1" help:"Resampling grid spacing in days"`
	SigmaDays int      `arg:"--sigma-days" default:"60" help:"Gaussian smoothing sigma in days"`
	MaxShift  int      `arg:"--max-shift" help:"Correlation shift bound in samples; 0 derives 3*sigma/delta"`
	Workers   int      `arg:"--workers" default:"1" help:"Goroutines for matrix construction"`
	LogLevel  string   `arg:"-l,--log-level" default:"info" help:"Set the logging level (debug, info, warn, error)"`
}

func (argSpec) Version() string {
	return version
}

func main() {
	var args argSpec
	arg.MustParse(&args)

	level, err := logrus.ParseLevel(args.LogLevel)
	if err != nil {
		log.Fatalf("parsing log level: %v", err)
	}
	log.SetLevel(level)

	if err := run(args); err != nil {
		log.Fatal(err)
	}
}

func run(args argSpec) error {
	start, err := time.Parse("2006-01-02", args.StartDate)
	if err != nil {
		return fmt.Errorf("parsing start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", args.EndDate)
	if err != nil {
		return fmt.Errorf("parsing end date: %w", err)
	}

	delta := time.Duration(args.DeltaDays) * 24 * time.Hour
	sigma := time.Duration(args.SigmaDays) * 24 * time.Hour

	maxShift := args.MaxShift
	if maxShift <= 0 {
		maxShift = int(3 * sigma / delta)
	}

	records, err := catalog.LoadCSV(args.Records)
	if err != nil {
		return err
	}
	log.Infof("loaded %d records from %s", len(records), args.Records)

	if args.GeoTable != "" {
		table, err := geo.LoadTable(args.GeoTable)
		if err != nil {
			return err
		}
		table.Annotate(records)
	}

	groups, err := catalog.SelectGroups(records, catalog.GroupConfig{
		FuelTypes:  args.FuelTypes,
		Exclusive:  args.Exclusive,
		Sector:     args.Sector,
		Start:      start,
		End:        end,
		NGroups:    args.Groups,
		SelectFrom: catalog.Selection(args.From),
	})
	if err != nil {
		return err
	}
	log.Infof("selected %d groups", len(groups))

	var (
		all  []*series.CapacitySeries
		zips []int
	)

	for _, g := range groups {
		s, err := catalog.BuildSeries(g)
		if err != nil {
			return err
		}

		s.Smooth(start, end, delta, sigma)
		if s.Len() == 0 {
			log.Warnf("zipcode %d: no usable data in range, skipping", g.Zipcode)
			continue
		}
		s.Normalize()

		all = append(all, s)
		zips = append(zips, g.Zipcode)
	}

	if len(all) == 0 {
		return fmt.Errorf("no groups with usable data in range")
	}

	reportPeaks(all, zips, sigma)
	reportCorrelations(all, zips, maxShift, sigma, delta, args.Workers)
	reportSimilarity(all, zips)

	return nil
}

func reportPeaks(all []*series.CapacitySeries, zips []int, sigma time.Duration) {
	for i, s := range all {
		p := peaks.Find(s, sigma)

		fields := logrus.Fields{
			"zipcode":   zips[i],
			"maxima":    len(p.Maxima),
			"minima":    len(p.Minima),
			"frequency": fmt.Sprintf("%.2f/yr", p.Frequency()),
		}
		if max := p.Max(); !max.Time.IsZero() {
			fields["dominant"] = max.Time.Format("2006-01-02")
		}

		log.WithFields(fields).Info("acceleration peaks")
	}
}

func reportCorrelations(all []*series.CapacitySeries, zips []int, maxShift int, sigma, delta time.Duration, workers int) {
	corr, shift := correlate.Matrices(all, correlate.Config{
		MaxShift: maxShift,
		Sigma:    sigma,
		Delta:    delta,
		Workers:  workers,
	})

	log.Info("correlation matrix (normalized, lower triangle)")
	printMatrix(corr, zips)

	// Strongest off-diagonal alignment.
	bestM, bestK := -1, -1
	best := 0.0
	for m := range corr {
		for k := 0; k < m; k++ {
			if corr[m][k] > best {
				best = corr[m][k]
				bestM, bestK = m, k
			}
		}
	}

	if bestM >= 0 {
		log.Infof("best alignment: %d vs %d, score %.3f, shift %+.2f years",
			zips[bestM], zips[bestK], best, shift[bestM][bestK])
	}
}

func reportSimilarity(all []*series.CapacitySeries, zips []int) {
	m := similarity.Matrix(all)
	similarity.NormalizeDiagonal(m)

	log.Info("cosine similarity matrix (diagonal normalized)")
	printMatrix(m, zips)

	i, j, coeff, ok := similarity.MostSimilarPair(m, 0.99)
	if !ok {
		log.Warn("no similar pair below cutoff")
		return
	}

	log.Infof("most similar pair: %d vs %d, coefficient %.3f", zips[i], zips[j], coeff)

	predicted := similarity.Predict(all[i], all[j], coeff)
	lower, upper := similarity.Bounds(predicted, coeff)

	n := predicted.Len()
	if n == 0 {
		return
	}

	last := n - 1
	log.Infof("predicted %d at %s: %.3f (bounds %.3f to %.3f)",
		zips[j], predicted.Time[last].Format("2006-01-02"),
		predicted.Capacity[last], lower[last], upper[last])
}

func printMatrix(m [][]float64, zips []int) {
	for i, row := range m {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%6.3f", v)
		}
		log.Infof("  %5d | %s", zips[i], strings.Join(cells, " "))
	}
}
