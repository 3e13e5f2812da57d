package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/schema"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
)

// ChangeStatus classifies the direction of a month-over-month change.
type ChangeStatus string

const (
	StatusIncrease ChangeStatus = "increase"
	StatusDecrease ChangeStatus = "decrease"
	StatusNeutral  ChangeStatus = "neutral"
)

// Change is one value's classified movement between two adjacent months.
// Direction lives in Status; Percent carries the rounded magnitude only.
type Change struct {
	Status ChangeStatus
	// Percent is zero for neutral changes and for the newly-appeared case,
	// where no percentage is defined.
	Percent  int
	Text     string
	Current  int
	Previous int
}

// classifyChange applies the deadband rules. previous == 0 with a live
// current value reads as "newly appeared" rather than a division by zero.
func classifyChange(current, previous int, threshold float64) Change {
	change := Change{
		Status:   StatusNeutral,
		Text:     "no change",
		Current:  current,
		Previous: previous,
	}
	switch {
	case previous > 0:
		pct := (float64(current) - float64(previous)) / float64(previous) * 100.0
		if pct > threshold {
			change.Status = StatusIncrease
			change.Percent = int(math.Round(pct))
			change.Text = fmt.Sprintf("%d%% increase", change.Percent)
		} else if pct < -threshold {
			change.Status = StatusDecrease
			change.Percent = int(math.Round(-pct))
			change.Text = fmt.Sprintf("%d%% decrease", change.Percent)
		}
	case current > 0:
		change.Status = StatusIncrease
		change.Text = "newly appeared"
	}
	return change
}

// Comparison contrasts one month against the month immediately before it.
type Comparison struct {
	Current *MonthStats
	// Previous is nil when the prior month has no records; see Downgraded.
	Previous      *MonthStats
	CurrentYear   int
	CurrentMonth  int
	PreviousYear  int
	PreviousMonth int
	Total         Change
	Peak          Change
	Columns       []ColumnComparison
}

// Downgraded reports whether this comparison must render as a single-month
// report because there is no prior-month data. The downgrade is deliberate
// behavior, not error suppression: Total, Peak and Columns are unset when
// it is true.
func (c *Comparison) Downgraded() bool { return c.Previous == nil }

// ColumnComparison aligns one categorical column across the two months.
// Rows covers the union of both months' top entries, sorted by name, with
// counts defaulting to zero on the side a name is missing from. Entries
// outside both top lists are not reconstructed.
type ColumnComparison struct {
	Column         string
	Rows           []CategoryComparison
	CurrentOthers  []CategoryCount
	PreviousOthers []CategoryCount
}

// ComputeComparison computes stats for (year, month) and the preceding
// calendar month (January wraps to December of the prior year) and
// derives the changes between them. It returns nil when the current month
// itself has no records.
func (e *Engine) ComputeComparison(records []tabular.Record, sch schema.Schema, year, month int) *Comparison {
	prevYear, prevMonth := previousMonth(year, month)

	current := e.ComputeMonthStats(FilterByMonth(records, sch.DateColumn, year, month), sch)
	if current == nil {
		return nil
	}
	previous := e.ComputeMonthStats(FilterByMonth(records, sch.DateColumn, prevYear, prevMonth), sch)

	cmp := &Comparison{
		Current:       current,
		Previous:      previous,
		CurrentYear:   year,
		CurrentMonth:  month,
		PreviousYear:  prevYear,
		PreviousMonth: prevMonth,
	}
	if previous == nil {
		return cmp
	}

	cmp.Total = classifyChange(current.TotalCount, previous.TotalCount, e.opts.ChangeThresholdPercent)
	cmp.Peak = classifyChange(peakCount(current), peakCount(previous), e.opts.ChangeThresholdPercent)
	for _, col := range sch.CategoricalColumns {
		cmp.Columns = append(cmp.Columns, compareColumn(col, current.distribution(col), previous.distribution(col)))
	}
	return cmp
}

func peakCount(s *MonthStats) int {
	if s == nil || s.PeakDay == nil {
		return 0
	}
	return s.PeakDay.Count
}

func compareColumn(col string, curr, prev ColumnDistribution) ColumnComparison {
	currCounts := make(map[string]int, len(curr.Items))
	prevCounts := make(map[string]int, len(prev.Items))
	union := make([]string, 0, len(curr.Items)+len(prev.Items))

	for _, it := range curr.Items {
		currCounts[it.Name] = it.Count
		union = append(union, it.Name)
	}
	for _, it := range prev.Items {
		prevCounts[it.Name] = it.Count
		if _, ok := currCounts[it.Name]; !ok {
			union = append(union, it.Name)
		}
	}
	sort.Strings(union)

	rows := make([]CategoryComparison, 0, len(union))
	for _, name := range union {
		rows = append(rows, CategoryComparison{
			Name:         name,
			CurrentCount: currCounts[name],
			PrevCount:    prevCounts[name],
		})
	}
	return ColumnComparison{
		Column:         col,
		Rows:           rows,
		CurrentOthers:  orEmpty(curr.Others),
		PreviousOthers: orEmpty(prev.Others),
	}
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty(items []CategoryCount) []CategoryCount {
	if items == nil {
		return []CategoryCount{}
	}
	return items
}
