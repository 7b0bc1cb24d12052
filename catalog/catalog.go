package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// Date wraps time.Time for CSV unmarshaling of approval dates.
type Date struct {
	time.Time
}

// dateLayouts lists accepted approval-date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	time.RFC3339,
}

// UnmarshalCSV parses an approval date from its CSV column.
func (d *Date) UnmarshalCSV(value string) error {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("catalog: unrecognized date %q", value)
}

// MarshalCSV renders an approval date back to its CSV column.
func (d Date) MarshalCSV() (string, error) {
	return d.Format("2006-01-02"), nil
}

// Facility is one interconnection record: a single installation with its
// rated capacity, location, sector, and approval date.
type Facility struct {
	Utility           string  `csv:"utility"`
	NameplateCapacity float64 `csv:"nameplate_capacity"` // kW
	RawFuelTypes      string  `csv:"fuel_types"`
	City              string  `csv:"facility_city"`
	County            string  `csv:"facility_county"`
	CAISOFlag         string  `csv:"caiso_flag"`
	Zipcode           int     `csv:"facility_zipcode"`
	CustomerSector    string  `csv:"customer_sector"`
	ApprovalDate      Date    `csv:"approval_date"`

	// Derived fields, filled after loading.
	FuelTypes []string `csv:"-"`
	Latitude  float64  `csv:"-"`
	Longitude float64  `csv:"-"`
	HasGeo    bool     `csv:"-"`
}

// LoadCSV reads facility records from a CSV file and normalizes their
// fuel-type labels.
func LoadCSV(path string) ([]*Facility, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open records: %w", err)
	}
	defer f.Close()

	var records []*Facility
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("catalog: parse records: %w", err)
	}

	for _, r := range records {
		r.FuelTypes = NormalizeFuelTypes(r.RawFuelTypes)
	}

	return records, nil
}
