package tabular

import (
	"strings"
	"time"
)

// Full date layouts, tried first. The time-bearing variants are matched
// against the input truncated to 19 characters so millisecond suffixes do
// not break parsing.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// Month/day layouts without a year; the current year is filled in.
var monthDayLayouts = []string{"01/02", "01-02", "01.02"}

// Month/year and year/month layouts without a day; the first of the month is
// filled in.
var monthYearLayouts = []string{"01/2006", "01-2006", "01.2006", "2006-01", "2006/01"}

var emptyDateMarkers = map[string]struct{}{
	"nan": {}, "none": {}, "nat": {}, "null": {},
}

// ParseDate parses the spreadsheet date formats seen in ingested data:
// Y-M-D, Y/M/D and Y.M.D with optional time-of-day, bare month/day
// (completed with the current year) and month/year or year/month (completed
// with day 1), falling back to RFC 3339. Values that cannot be read as a
// date return false; callers treat those cells as absent rather than
// failing the analysis.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if _, empty := emptyDateMarkers[strings.ToLower(s)]; empty {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		candidate := s
		if len(layout) > 10 && len(candidate) > 19 {
			candidate = candidate[:19]
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, true
		}
	}

	for _, layout := range monthDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(time.Now().Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	for _, layout := range monthYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}

	return time.Time{}, false
}
