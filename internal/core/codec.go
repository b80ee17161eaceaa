package core

// codec.go converts between vendor rows and Vendor values.
//
// Rows read from storage look like:
//
//	12,Jane Doe,07/25/1984,Texas
//
// and are validated against vendorRowRegex before decoding. The decoder reads
// the date month-first (MM/DD/YYYY). The encoder writes it day-first
// (DD/MM/YYYY), so a row written by Encode is not read back with the same
// date by Decode unless day == month.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	idxID = iota
	idxName
	idxBirthDate
	idxRegion
	rowFieldCount
)

const (
	maxEncodedName   = 35
	maxEncodedRegion = 15
)

// DecodeDatePattern is the fixed pattern used to read birth dates from rows.
const DecodeDatePattern = PatternMonthSlash

// vendorRowRegex is the shape a row must have to be decoded.
// Header lines and malformed rows fail it and are skipped.
var vendorRowRegex = regexp.MustCompile(`^\d+,[\w ]+,\d+/\d+/\d+,[\w ]+$`)

// Codec validates, decodes and encodes vendor rows.
// The zero value is ready to use.
type Codec struct{}

// IsValidRow reports whether line has the shape of a vendor row.
// It never fails; it only filters.
func (Codec) IsValidRow(line string) bool {
	return vendorRowRegex.MatchString(line)
}

// Decode parses a row into a Vendor. The row should already have passed
// IsValidRow; rows that pass can still fail here with ErrMalformedIdentifier
// (id overflows int), ErrUnrecognizedDateFormat (date not zero-padded) or
// ErrImpossibleDate.
func (Codec) Decode(line string) (Vendor, error) {
	fields := strings.Split(line, ",")
	if len(fields) != rowFieldCount {
		return Vendor{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, rowFieldCount, len(fields))
	}

	id, err := strconv.Atoi(fields[idxID])
	if err != nil {
		return Vendor{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, fields[idxID])
	}

	birthDate, err := ParseDate(fields[idxBirthDate], DecodeDatePattern)
	if err != nil {
		return Vendor{}, fmt.Errorf("decode birth date of vendor %d: %w", id, err)
	}

	return Vendor{
		ID:        id,
		Name:      fields[idxName],
		BirthDate: birthDate,
		Region:    fields[idxRegion],
	}, nil
}

// Encode renders v as a storage row: id,name,DD/MM/YYYY,region with the name
// cut to 35 characters and the region to 15.
func (Codec) Encode(v Vendor) string {
	return fmt.Sprintf("%d,%s,%s,%s",
		v.ID,
		truncate(v.Name, maxEncodedName),
		v.BirthDate.Format(PatternDaySlash),
		truncate(v.Region, maxEncodedRegion),
	)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
