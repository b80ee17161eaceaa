// Package templates renders the HTML report pages.
//
// Pages are written as .templ files; run `templ generate` after editing them.
package templates

//go:generate templ generate

// VendorRow is one row of the general report page.
type VendorRow struct {
	ID        int
	Name      string
	BirthDate string
	Region    string
	Age       int
}

// RegionRow is one row of the average age page.
type RegionRow struct {
	Region     string
	AverageAge float64
	Count      int
}
