package core

// date.go parses calendar dates from text using a small set of named patterns.
//
// Each pattern fixes both the separator and the field order, and requires
// exactly two digits for day and month and four for the year. Parsing is
// two-staged so callers can tell the failures apart:
//
//   - the text does not have the shape of the pattern -> ErrUnrecognizedDateFormat
//   - the shape is right but the date does not exist    -> ErrImpossibleDate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DatePattern names a textual date layout such as "dd/mm/yyyy".
type DatePattern string

const (
	PatternDaySlash   DatePattern = "dd/mm/yyyy"
	PatternMonthSlash DatePattern = "mm/dd/yyyy"
	PatternDayDash    DatePattern = "dd-mm-yyyy"
	PatternMonthDash  DatePattern = "mm-dd-yyyy"
)

// Pre-compiled shapes, anchored at both ends.
var (
	slashDateRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dashDateRegex  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

type dateLayout struct {
	shape      *regexp.Regexp
	sep        string
	monthFirst bool
}

var dateLayouts = map[DatePattern]dateLayout{
	PatternDaySlash:   {shape: slashDateRegex, sep: "/"},
	PatternMonthSlash: {shape: slashDateRegex, sep: "/", monthFirst: true},
	PatternDayDash:    {shape: dashDateRegex, sep: "-"},
	PatternMonthDash:  {shape: dashDateRegex, sep: "-", monthFirst: true},
}

// Valid reports whether p is one of the supported patterns.
func (p DatePattern) Valid() bool {
	_, ok := dateLayouts[p]
	return ok
}

// DatePatterns returns the supported pattern names.
func DatePatterns() []DatePattern {
	return []DatePattern{PatternDaySlash, PatternMonthSlash, PatternDayDash, PatternMonthDash}
}

// Date is a calendar date without time of day or location.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month and day, or an error wrapping
// ErrImpossibleDate when the combination does not exist in the calendar.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrImpossibleDate, year, int(month), day)
	}
	return d, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsValid reports whether d names a real calendar day.
func (d Date) IsValid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	// time.Date normalizes overflow (Feb 30 -> Mar 1), so a round trip
	// only survives for days that exist.
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns d at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Format renders d in the given pattern. It panics on an unknown pattern.
func (d Date) Format(p DatePattern) string {
	layout := mustLayout(p)
	first, second := d.Day, int(d.Month)
	if layout.monthFirst {
		first, second = second, first
	}
	return fmt.Sprintf("%02d%s%02d%s%04d", first, layout.sep, second, layout.sep, d.Year)
}

// ParseDate converts text into a Date following pattern.
//
// It panics if pattern is not one of the supported patterns; callers that
// take patterns from user input or configuration should check
// DatePattern.Valid first.
func ParseDate(text string, pattern DatePattern) (Date, error) {
	layout := mustLayout(pattern)

	if !layout.shape.MatchString(text) {
		return Date{}, fmt.Errorf("%w: %q does not match %s", ErrUnrecognizedDateFormat, text, pattern)
	}

	parts := strings.Split(text, layout.sep)
	first, _ := strconv.Atoi(parts[0])
	second, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	day, month := first, second
	if layout.monthFirst {
		day, month = second, first
	}

	d := Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return Date{}, fmt.Errorf("%w: %q is not a calendar date for %s", ErrImpossibleDate, text, pattern)
	}
	return d, nil
}

func mustLayout(p DatePattern) dateLayout {
	layout, ok := dateLayouts[p]
	if !ok {
		panic(fmt.Sprintf("core: unknown date pattern %q", string(p)))
	}
	return layout
}
