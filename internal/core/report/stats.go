// Package report is the aggregation engine: it buckets typed records by
// calendar month, computes distributions and peaks, compares adjacent
// months, accumulates running totals, and assembles the results into a
// closed set of infographic components.
//
// Every computation here is a pure function of its inputs. The engine
// carries configuration only, so one instance serves concurrent requests
// without synchronization.
package report

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/normalize"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/schema"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
)

const isoDay = "2006-01-02"

// Options tunes report assembly. Zero fields fall back to the defaults.
type Options struct {
	// MaxCategoryItems caps each distribution's ranked list; the remainder
	// is carried separately as "others".
	MaxCategoryItems int
	// MaxDailyBreakdownDays caps the daily breakdown list.
	MaxDailyBreakdownDays int
	// MaxMonthlyDistributionMonths caps the month-of-year distribution.
	MaxMonthlyDistributionMonths int
	// MaxSummaryItems caps the summary highlight list.
	MaxSummaryItems int
	// ChangeThresholdPercent is the deadband below which a month-over-month
	// change reads as "no change". Keeps floating-point residue from
	// rendering as a 0% increase.
	ChangeThresholdPercent float64
	// MonthlyDistributionColumns are checked in header order; the first one
	// present in a table gets a month-of-year distribution component.
	MonthlyDistributionColumns []string
}

// DefaultOptions returns the limits used when the caller does not
// configure its own.
func DefaultOptions() Options {
	return Options{
		MaxCategoryItems:             5,
		MaxDailyBreakdownDays:        10,
		MaxMonthlyDistributionMonths: 12,
		MaxSummaryItems:              4,
		ChangeThresholdPercent:       0.1,
		MonthlyDistributionColumns:   []string{"여행일", "여행일자"},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxCategoryItems <= 0 {
		o.MaxCategoryItems = def.MaxCategoryItems
	}
	if o.MaxDailyBreakdownDays <= 0 {
		o.MaxDailyBreakdownDays = def.MaxDailyBreakdownDays
	}
	if o.MaxMonthlyDistributionMonths <= 0 {
		o.MaxMonthlyDistributionMonths = def.MaxMonthlyDistributionMonths
	}
	if o.MaxSummaryItems <= 0 {
		o.MaxSummaryItems = def.MaxSummaryItems
	}
	if o.ChangeThresholdPercent <= 0 {
		o.ChangeThresholdPercent = def.ChangeThresholdPercent
	}
	if o.MonthlyDistributionColumns == nil {
		o.MonthlyDistributionColumns = def.MonthlyDistributionColumns
	}
	return o
}

// Engine computes infographic reports from typed tables. It holds no
// per-request state.
type Engine struct {
	opts Options
	norm *normalize.Normalizer
	log  *logrus.Logger
}

// NewEngine creates an Engine. norm may be nil for plain canonicalization;
// log may be nil.
func NewEngine(opts Options, norm *normalize.Normalizer, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{opts: opts.withDefaults(), norm: norm, log: log}
}

// MonthStats is one window's aggregate view. It is derived data: built
// fresh per query, never mutated afterwards.
type MonthStats struct {
	TotalCount int
	// PeakDay is nil when no record in the window carries a parseable date.
	PeakDay *DayCount
	// Daily lists the busiest days, count descending, capped by
	// MaxDailyBreakdownDays.
	Daily []DayCount
	// Distributions holds one entry per categorical column, in schema
	// order.
	Distributions []ColumnDistribution
}

// ColumnDistribution is the ranked value breakdown of one categorical
// column.
type ColumnDistribution struct {
	Column string
	// Items is the top slice, sorted by count descending. Ties keep
	// first-seen record order.
	Items []CategoryCount
	// Others is the remainder past the cap, same ordering.
	Others []CategoryCount
}

func (s *MonthStats) distribution(col string) ColumnDistribution {
	if s == nil {
		return ColumnDistribution{Column: col}
	}
	for _, d := range s.Distributions {
		if d.Column == col {
			return d
		}
	}
	return ColumnDistribution{Column: col}
}

// ComputeMonthStats aggregates one window of records: total count, peak
// day, busiest days and per-column distributions. It returns nil for an
// empty window; that nil is the "no data for this period" signal callers
// branch on.
func (e *Engine) ComputeMonthStats(records []tabular.Record, sch schema.Schema) *MonthStats {
	if len(records) == 0 {
		return nil
	}

	stats := &MonthStats{TotalCount: len(records)}
	if sch.DateColumn != "" {
		stats.PeakDay, stats.Daily = e.dailyCounts(records, sch.DateColumn)
	}
	for _, col := range sch.CategoricalColumns {
		stats.Distributions = append(stats.Distributions, e.distribution(records, col))
	}
	return stats
}

// dailyCounts groups records by calendar day. Days sort by count
// descending with the earlier date winning ties, which keeps peak-day
// selection deterministic for equal input multisets.
func (e *Engine) dailyCounts(records []tabular.Record, dateColumn string) (*DayCount, []DayCount) {
	counts := map[string]int{}
	for _, rec := range records {
		t, ok := rec.Get(dateColumn).Date()
		if !ok {
			continue
		}
		counts[t.Format(isoDay)]++
	}
	if len(counts) == 0 {
		return nil, nil
	}

	days := make([]DayCount, 0, len(counts))
	for iso, n := range counts {
		days = append(days, DayCount{Date: iso, Count: n})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Count != days[j].Count {
			return days[i].Count > days[j].Count
		}
		return days[i].Date < days[j].Date
	})

	peak := days[0]
	peak.Label = dayLabel(peak.Date)

	limit := e.opts.MaxDailyBreakdownDays
	if limit > len(days) {
		limit = len(days)
	}
	daily := make([]DayCount, limit)
	for i := 0; i < limit; i++ {
		d := days[i]
		d.Label = dayWeekdayLabel(d.Date)
		daily[i] = d
	}
	return &peak, daily
}

// distribution counts a categorical column's normalized values. Absent
// cells and values that normalize to nothing stay out of the grouping;
// the record still counts toward the window total.
func (e *Engine) distribution(records []tabular.Record, col string) ColumnDistribution {
	counts := map[string]int{}
	names := make([]string, 0, 16)
	for _, rec := range records {
		v := rec.Get(col)
		if v.IsAbsent() {
			continue
		}
		name := e.norm.Normalize(v.Text())
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			names = append(names, name)
		}
		counts[name]++
	}

	// names starts in first-seen order; the stable sort keeps that order
	// for equal counts.
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	dist := ColumnDistribution{Column: col}
	for i, name := range names {
		entry := CategoryCount{Name: name, Count: counts[name]}
		if i < e.opts.MaxCategoryItems {
			dist.Items = append(dist.Items, entry)
		} else {
			dist.Others = append(dist.Others, entry)
		}
	}
	return dist
}

func dayLabel(iso string) string {
	t, err := time.Parse(isoDay, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2")
}

func dayWeekdayLabel(iso string) string {
	t, err := time.Parse(isoDay, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2 (Mon)")
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

func monthShort(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()[:3]
}
