package catalog

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ctl-alt-leist/energy-explorer/series"
)

// ErrInvalidSelection is returned for an unrecognized group selection mode.
var ErrInvalidSelection = errors.New("catalog: selection must be highest, middle, or lowest")

// Selection picks which end of the capacity ranking to take groups from.
type Selection string

const (
	SelectHighest Selection = "highest"
	SelectMiddle  Selection = "middle"
	SelectLowest  Selection = "lowest"
)

// GroupConfig controls filtering and group selection.
type GroupConfig struct {
	// FuelTypes filters records by fuel type; empty keeps everything.
	FuelTypes []string
	// Exclusive requires the exact fuel-type set instead of any overlap.
	Exclusive bool
	// Sector filters by customer sector; empty keeps everything.
	Sector string
	// Start and End bound the approval date as [Start, End); zero values
	// are unbounded.
	Start, End time.Time
	// NGroups caps how many groups are returned; 0 returns all.
	NGroups int
	// SelectFrom picks the ranking end when NGroups > 0. Empty defaults
	// to SelectHighest.
	SelectFrom Selection
}

// Group is a cohort of facilities sharing a zipcode, with facilities in
// ascending approval-date order.
type Group struct {
	Zipcode       int
	Facilities    []*Facility
	TotalCapacity float64 // summed nameplate capacity, kW
}

// SelectGroups filters records, groups them by zipcode, ranks groups by
// total nameplate capacity, and returns the configured slice of the
// ranking. Groups come back ordered by ascending total capacity except for
// SelectHighest, which orders descending so the dominant group leads.
func SelectGroups(records []*Facility, cfg GroupConfig) ([]Group, error) {
	filtered := filterRecords(records, cfg)

	byZip := make(map[int][]*Facility)
	for _, r := range filtered {
		byZip[r.Zipcode] = append(byZip[r.Zipcode], r)
	}

	groups := make([]Group, 0, len(byZip))
	for zip, facilities := range byZip {
		sort.Slice(facilities, func(i, j int) bool {
			return facilities[i].ApprovalDate.Before(facilities[j].ApprovalDate.Time)
		})

		var total float64
		for _, f := range facilities {
			total += f.NameplateCapacity
		}

		groups = append(groups, Group{Zipcode: zip, Facilities: facilities, TotalCapacity: total})
	}

	// Ascending capacity; zipcode breaks ties deterministically.
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalCapacity != groups[j].TotalCapacity {
			return groups[i].TotalCapacity < groups[j].TotalCapacity
		}
		return groups[i].Zipcode < groups[j].Zipcode
	})

	if cfg.NGroups <= 0 || cfg.NGroups >= len(groups) {
		return groups, nil
	}

	n := cfg.NGroups
	mode := cfg.SelectFrom
	if mode == "" {
		mode = SelectHighest
	}

	switch mode {
	case SelectHighest:
		top := groups[len(groups)-n:]
		reversed := make([]Group, n)
		for i := range top {
			reversed[n-1-i] = top[i]
		}
		return reversed, nil
	case SelectLowest:
		return groups[:n], nil
	case SelectMiddle:
		midStart := (len(groups) - n) / 2
		return groups[midStart : midStart+n], nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSelection, cfg.SelectFrom)
	}
}

func filterRecords(records []*Facility, cfg GroupConfig) []*Facility {
	var out []*Facility
	for _, r := range records {
		if cfg.Sector != "" && r.CustomerSector != cfg.Sector {
			continue
		}
		if !cfg.Start.IsZero() && r.ApprovalDate.Before(cfg.Start) {
			continue
		}
		if !cfg.End.IsZero() && !r.ApprovalDate.Before(cfg.End) {
			continue
		}
		if !matchesFuelTypes(r, cfg.FuelTypes, cfg.Exclusive) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// BuildSeries converts a group's approval history into a cumulative
// capacity series in MW. Records sharing an approval date keep only the
// first occurrence, so the series timestamps are strictly increasing.
func BuildSeries(g Group) (*series.CapacitySeries, error) {
	var (
		times    []time.Time
		capacity []float64
		running  float64
	)

	for i, f := range g.Facilities {
		if i > 0 && f.ApprovalDate.Equal(g.Facilities[i-1].ApprovalDate.Time) {
			continue
		}

		running += f.NameplateCapacity / 1000 // kW -> MW
		times = append(times, f.ApprovalDate.Time)
		capacity = append(capacity, running)
	}

	s, err := series.New(times, capacity)
	if err != nil {
		return nil, fmt.Errorf("catalog: series for zipcode %d: %w", g.Zipcode, err)
	}

	return s, nil
}
