// Package console renders vendor reports as fixed-width text tables.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/vendors/internal/core"
)

const (
	generalHeaderFormat = "%3s %20s %15s %15s %10s\n"
	generalRowFormat    = "%3d %20s %15s %15s %5d años\n"
	averageHeaderFormat = "%20s %15s\n"
	averageRowFormat    = "%20s %15.2f\n"
)

// FormatVendor renders one vendor row of the general report.
func FormatVendor(v core.Vendor, now time.Time) string {
	return strings.TrimSuffix(fmt.Sprintf(generalRowFormat,
		v.ID, v.Name, v.BirthDate.String(), v.Region, v.AgeAt(now)), "\n")
}

// WriteGeneralReport writes the header and one line per vendor.
func WriteGeneralReport(w io.Writer, r core.GeneralReport, now time.Time) error {
	if _, err := fmt.Fprintf(w, generalHeaderFormat, "Id", "Nombre", "Fecha Nac", "Estado", "Edad"); err != nil {
		return err
	}
	for _, v := range r.Vendors() {
		if _, err := fmt.Fprintln(w, FormatVendor(v, now)); err != nil {
			return err
		}
	}
	return nil
}

// WriteAverageAgeReport writes the header and one line per region,
// sorted by region.
func WriteAverageAgeReport(w io.Writer, r core.AverageAgeReport) error {
	if _, err := fmt.Fprintf(w, averageHeaderFormat, "Estado", "Edad Promedio"); err != nil {
		return err
	}
	for _, e := range r.Entries() {
		if _, err := fmt.Fprintf(w, averageRowFormat, e.Region, e.AverageAge); err != nil {
			return err
		}
	}
	return nil
}

// GeneralReportString is WriteGeneralReport into a string.
func GeneralReportString(r core.GeneralReport, now time.Time) string {
	var b strings.Builder
	WriteGeneralReport(&b, r, now)
	return b.String()
}

// AverageAgeReportString is WriteAverageAgeReport into a string.
func AverageAgeReportString(r core.AverageAgeReport) string {
	var b strings.Builder
	WriteAverageAgeReport(&b, r)
	return b.String()
}
