package report

import (
	"fmt"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
	apperrors "github.com/vizlet-labs/vizlet-backend-go/pkg/errors"
)

// Measure is one series of a cumulative report: a display name plus a
// per-record value extractor.
type Measure struct {
	Name  string
	Value func(tabular.Record) float64
}

// CountMeasure counts records regardless of content.
func CountMeasure(name string) Measure {
	return Measure{Name: name, Value: func(tabular.Record) float64 { return 1 }}
}

// SumMeasure sums a numeric column. Cells that do not read as numbers
// contribute zero.
func SumMeasure(column string) Measure {
	return Measure{Name: column, Value: func(r tabular.Record) float64 {
		f, ok := r.Get(column).Float()
		if !ok {
			return 0
		}
		return f
	}}
}

// MeasureSeries is one measure evaluated over the month axis: per-month
// values plus their running totals. Running[i] always equals
// Running[i-1] + Values[i].
type MeasureSeries struct {
	Name    string
	Values  []int
	Running []int
}

// Cumulative is a dense month axis and every measure's series over it.
type Cumulative struct {
	// Labels are "2006-01" month labels running from the earliest dated
	// record through the earlier of the target month and the latest dated
	// record. Empty when nothing parses as a date or all data postdates
	// the target.
	Labels []string
	Series []MeasureSeries
}

// ComputeCumulative buckets records by calendar month and evaluates each
// measure per month together with its running total. Months without
// matching records contribute zero, never a gap. Records with
// unparseable dates or dated after the target (year, month) are
// excluded. Duplicate measure names are a configuration error and fail
// loudly rather than silently overwriting a series.
func (e *Engine) ComputeCumulative(records []tabular.Record, dateColumn string, measures []Measure, year, month int) (*Cumulative, error) {
	seen := make(map[string]struct{}, len(measures))
	for _, m := range measures {
		if _, dup := seen[m.Name]; dup {
			return nil, apperrors.WithDetails(apperrors.ErrDuplicateSeries,
				fmt.Sprintf("series %q configured twice", m.Name))
		}
		seen[m.Name] = struct{}{}
	}

	periods := make([]int, len(records))
	first, last, any := 0, 0, false
	for i, rec := range records {
		t, ok := rec.Get(dateColumn).Date()
		if !ok {
			periods[i] = -1
			continue
		}
		p := periodIndex(t.Year(), int(t.Month()))
		periods[i] = p
		if !any || p < first {
			first = p
		}
		if !any || p > last {
			last = p
		}
		any = true
	}

	if target := periodIndex(year, month); target < last {
		last = target
	}

	cum := &Cumulative{}
	if !any || last < first {
		for _, m := range measures {
			cum.Series = append(cum.Series, MeasureSeries{Name: m.Name})
		}
		return cum, nil
	}

	cum.Labels = make([]string, 0, last-first+1)
	for p := first; p <= last; p++ {
		cum.Labels = append(cum.Labels, periodLabel(p))
	}

	for _, m := range measures {
		totals := make([]float64, len(cum.Labels))
		for i, rec := range records {
			p := periods[i]
			if p < 0 || p > last {
				continue
			}
			totals[p-first] += m.Value(rec)
		}
		series := MeasureSeries{
			Name:    m.Name,
			Values:  make([]int, len(totals)),
			Running: make([]int, len(totals)),
		}
		running := 0
		for i, v := range totals {
			series.Values[i] = int(v)
			running += int(v)
			series.Running[i] = running
		}
		cum.Series = append(cum.Series, series)
	}
	return cum, nil
}

// periodIndex maps (year, month) onto a linear month axis.
func periodIndex(year, month int) int { return year*12 + (month - 1) }

func periodLabel(p int) string {
	return fmt.Sprintf("%04d-%02d", p/12, p%12+1)
}
