package report

import (
	"time"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
)

// FilterByMonth returns the records whose dateColumn value parses to a
// date inside (year, month). Records with a missing or unparseable date
// are excluded, never errors: malformed dates shrink the population, they
// do not abort the analysis. Input order is preserved.
func FilterByMonth(records []tabular.Record, dateColumn string, year, month int) []tabular.Record {
	if dateColumn == "" {
		return nil
	}
	out := make([]tabular.Record, 0, len(records))
	for _, rec := range records {
		t, ok := rec.Get(dateColumn).Date()
		if !ok {
			continue
		}
		if t.Year() == year && t.Month() == time.Month(month) {
			out = append(out, rec)
		}
	}
	return out
}

// latestMonth scans dateColumn for the most recent parseable date and
// returns its (year, month). ok is false when nothing parses.
func latestMonth(records []tabular.Record, dateColumn string) (year, month int, ok bool) {
	var latest time.Time
	for _, rec := range records {
		t, parsed := rec.Get(dateColumn).Date()
		if !parsed {
			continue
		}
		if !ok || t.After(latest) {
			latest = t
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return latest.Year(), int(latest.Month()), true
}

// previousMonth steps one calendar month back, wrapping January to
// December of the prior year.
func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
