// Package catalog loads and filters interconnection records and turns
// grouped facilities into cumulative capacity series.
//
// It is the producer side of the analysis pipeline: records are loaded
// from CSV, fuel-type labels are normalized, facilities are filtered by
// sector, fuel type, and date range, grouped by zipcode, ranked by total
// nameplate capacity, and the highest, middle, or lowest N groups are
// selected. [BuildSeries] converts one group's approval history into a
// cumulative [series.CapacitySeries] ready for smoothing.
//
// An unrecognized selection mode is an explicit invalid-argument failure
// ([ErrInvalidSelection]); the analysis packages themselves never validate
// selection, that contract lives here with the caller-facing surface.
package catalog
