package core

import (
	"sort"
	"time"
)

// GeneralReport is a snapshot of every vendor at the time it was built.
type GeneralReport struct {
	vendors []Vendor
}

// NewGeneralReport copies set into a new report.
func NewGeneralReport(set RecordSet) GeneralReport {
	return GeneralReport{vendors: set.Vendors()}
}

// Vendors returns a copy of the vendors in the report.
func (r GeneralReport) Vendors() []Vendor {
	out := make([]Vendor, len(r.vendors))
	copy(out, r.vendors)
	return out
}

// Len returns the number of vendors in the report.
func (r GeneralReport) Len() int {
	return len(r.vendors)
}

// RegionAverage is one row of an AverageAgeReport.
type RegionAverage struct {
	Region     string
	AverageAge float64
	Count      int
}

// AverageAgeReport holds the mean vendor age per region.
// Only regions that have at least one vendor appear.
type AverageAgeReport struct {
	byRegion map[string]RegionAverage
}

// NewAverageAgeReport groups set by region and averages the ages as of asOf.
func NewAverageAgeReport(set RecordSet, asOf time.Time) AverageAgeReport {
	sums := make(map[string]int)
	counts := make(map[string]int)

	for v := range set.All() {
		sums[v.Region] += v.AgeAt(asOf)
		counts[v.Region]++
	}

	byRegion := make(map[string]RegionAverage, len(counts))
	for region, n := range counts {
		byRegion[region] = RegionAverage{
			Region:     region,
			AverageAge: float64(sums[region]) / float64(n),
			Count:      n,
		}
	}

	return AverageAgeReport{byRegion: byRegion}
}

// Average returns the mean age for region and whether the region exists.
func (r AverageAgeReport) Average(region string) (float64, bool) {
	ra, ok := r.byRegion[region]
	return ra.AverageAge, ok
}

// Len returns the number of regions.
func (r AverageAgeReport) Len() int {
	return len(r.byRegion)
}

// Regions returns the region names sorted alphabetically.
func (r AverageAgeReport) Regions() []string {
	regions := make([]string, 0, len(r.byRegion))
	for region := range r.byRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// Entries returns one RegionAverage per region, sorted by region.
func (r AverageAgeReport) Entries() []RegionAverage {
	entries := make([]RegionAverage, 0, len(r.byRegion))
	for _, region := range r.Regions() {
		entries = append(entries, r.byRegion[region])
	}
	return entries
}

// Map returns a copy of the region -> average age mapping.
func (r AverageAgeReport) Map() map[string]float64 {
	out := make(map[string]float64, len(r.byRegion))
	for region, ra := range r.byRegion {
		out[region] = ra.AverageAge
	}
	return out
}
