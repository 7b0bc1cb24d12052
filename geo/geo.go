// Package geo maps facility zipcodes to geographic coordinates using a
// caller-supplied CSV lookup table. The analysis core never needs
// coordinates; they exist for downstream reporting and mapping consumers.
package geo

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/ctl-alt-leist/energy-explorer/catalog"
)

// Entry is one row of the zipcode lookup table.
type Entry struct {
	Zipcode   int     `csv:"zipcode"`
	Latitude  float64 `csv:"latitude"`
	Longitude float64 `csv:"longitude"`
}

// Table resolves zipcodes to coordinates.
type Table struct {
	byZip map[int]Entry
}

// LoadTable reads a zipcode lookup table from a CSV file. Later duplicate
// zipcodes override earlier ones.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geo: open table: %w", err)
	}
	defer f.Close()

	var entries []Entry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, fmt.Errorf("geo: parse table: %w", err)
	}

	t := &Table{byZip: make(map[int]Entry, len(entries))}
	for _, e := range entries {
		t.byZip[e.Zipcode] = e
	}

	return t, nil
}

// Locate returns the coordinates for a zipcode, ok reporting whether the
// table knows it.
func (t *Table) Locate(zipcode int) (lat, lon float64, ok bool) {
	e, ok := t.byZip[zipcode]
	if !ok {
		return 0, 0, false
	}
	return e.Latitude, e.Longitude, true
}

// Annotate fills geographic coordinates on every record whose zipcode the
// table resolves; unknown zipcodes are left unset.
func (t *Table) Annotate(records []*catalog.Facility) {
	for _, r := range records {
		if lat, lon, ok := t.Locate(r.Zipcode); ok {
			r.Latitude = lat
			r.Longitude = lon
			r.HasGeo = true
		}
	}
}
