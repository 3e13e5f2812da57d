package report

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/schema"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
	apperrors "github.com/vizlet-labs/vizlet-backend-go/pkg/errors"
)

// ReportType selects which component set an analysis produces.
type ReportType string

const (
	ReportSingle     ReportType = "single"
	ReportComparison ReportType = "comparison"
	ReportCumulative ReportType = "cumulative"
)

// ParseReportType validates a report type string. Empty means single.
func ParseReportType(s string) (ReportType, error) {
	switch ReportType(s) {
	case "", ReportSingle:
		return ReportSingle, nil
	case ReportComparison:
		return ReportComparison, nil
	case ReportCumulative:
		return ReportCumulative, nil
	default:
		return "", apperrors.WithDetails(apperrors.ErrInvalidReportType,
			fmt.Sprintf("unknown report type %q", s))
	}
}

// Fallback markers recorded on a Report when the requested month had no
// data.
const (
	FallbackNone        = ""
	FallbackLatestMonth = "latest_month"
	FallbackFullDataset = "full_dataset"
)

// Report is one analysis result: the ordered component sequence plus the
// window that actually produced it.
type Report struct {
	Components []Component
	// Year and Month are the effective window; they differ from the
	// request when Fallback is set.
	Year  int
	Month int
	// ReportType is the mode the components were actually built in. A
	// comparison downgrades to single when there is no prior-month data.
	ReportType ReportType
	Fallback   string
}

// cumulativePalette cycles across cumulative series.
var cumulativePalette = []string{
	"indigo", "blue", "green", "yellow", "orange",
	"red", "pink", "purple", "cyan", "teal",
}

// BuildReport assembles the component sequence for one analysis request.
//
// When the requested month has no records the window falls back, first to
// the latest month that has data, then to the whole dataset with date
// analytics disabled. An empty table produces an empty component list,
// not an error. Components whose payload is empty are dropped before the
// report is returned.
func (e *Engine) BuildReport(table *tabular.Table, sch schema.Schema, year, month int, reportType ReportType) (*Report, error) {
	if reportType == "" {
		reportType = ReportSingle
	}
	rep := &Report{Components: []Component{}, Year: year, Month: month, ReportType: reportType}
	if table == nil || len(table.Rows) == 0 {
		return rep, nil
	}

	if reportType == ReportCumulative {
		comps, err := e.buildCumulative(table, year, month)
		if err != nil {
			return nil, err
		}
		rep.Components = dropEmpty(comps)
		return rep, nil
	}

	stats := e.resolveWindow(table, sch, rep)
	if stats == nil {
		return rep, nil
	}

	if reportType == ReportComparison {
		if sch.HasDateColumn() {
			if cmp := e.ComputeComparison(table.Rows, sch, rep.Year, rep.Month); cmp != nil && !cmp.Downgraded() {
				comps := e.comparisonComponents(cmp)
				comps = e.appendShared(comps, stats, rep.Month, table)
				rep.Components = dropEmpty(comps)
				return rep, nil
			}
		}
		rep.ReportType = ReportSingle
		e.log.WithFields(logrus.Fields{
			"year":  rep.Year,
			"month": rep.Month,
		}).Debug("No prior-month data, downgrading comparison to single report")
	} else {
		rep.ReportType = ReportSingle
	}

	comps := e.singleComponents(stats, sch)
	comps = e.appendShared(comps, stats, rep.Month, table)
	rep.Components = dropEmpty(comps)
	return rep, nil
}

// resolveWindow filters the table to the requested month and computes its
// stats, applying the fallback chain when the month is empty. The
// effective window is recorded on rep.
func (e *Engine) resolveWindow(table *tabular.Table, sch schema.Schema, rep *Report) *MonthStats {
	records := FilterByMonth(table.Rows, sch.DateColumn, rep.Year, rep.Month)
	stats := e.ComputeMonthStats(records, sch)
	if stats != nil {
		return stats
	}

	if sch.HasDateColumn() {
		if fbYear, fbMonth, ok := latestMonth(table.Rows, sch.DateColumn); ok {
			records = FilterByMonth(table.Rows, sch.DateColumn, fbYear, fbMonth)
			if stats = e.ComputeMonthStats(records, sch); stats != nil {
				e.log.WithFields(logrus.Fields{
					"requested_year":  rep.Year,
					"requested_month": rep.Month,
					"fallback_year":   fbYear,
					"fallback_month":  fbMonth,
				}).Debug("Requested month has no data, falling back to latest month")
				rep.Year, rep.Month, rep.Fallback = fbYear, fbMonth, FallbackLatestMonth
				return stats
			}
		}
	}

	// No usable dates anywhere: analyze the whole dataset without date
	// analytics.
	noDate := sch
	noDate.DateColumn = ""
	rep.Fallback = FallbackFullDataset
	e.log.WithFields(logrus.Fields{
		"requested_year":  rep.Year,
		"requested_month": rep.Month,
	}).Debug("No dated records, analyzing full dataset")
	return e.ComputeMonthStats(table.Rows, noDate)
}

func (e *Engine) singleComponents(stats *MonthStats, sch schema.Schema) []Component {
	comps := []Component{{
		Type:         TypeKPI,
		Title:        "Total Records",
		SourceColumn: "total_count",
		Icon:         "hash",
		Color:        "indigo",
		Data:         KPIPayload{Value: stats.TotalCount, Unit: "records"},
	}}

	if stats.PeakDay != nil {
		comps = append(comps, Component{
			Type:         TypeKPI,
			Title:        "Peak Day",
			SourceColumn: "peak_day",
			Icon:         "trending-up",
			Color:        "orange",
			Data: KPIPayload{
				Value:    stats.PeakDay.Count,
				Unit:     "records",
				Subtitle: stats.PeakDay.Label,
			},
		})
	}

	for _, col := range sch.CategoricalColumns {
		comps = append(comps, Component{
			Type:         TypeBarChart,
			Title:        col + " Distribution",
			SourceColumn: col,
			Icon:         "pie-chart",
			Color:        "sky",
			Data:         BarChartPayload(stats.distribution(col).Items),
		})
	}
	return comps
}

func (e *Engine) comparisonComponents(cmp *Comparison) []Component {
	currLabel := monthShort(cmp.CurrentMonth)
	prevLabel := monthShort(cmp.PreviousMonth)

	comps := []Component{{
		Type:         TypeComparisonKPI,
		Title:        "Total Records Comparison",
		SourceColumn: "total_count",
		Icon:         "hash",
		Color:        "indigo",
		Data: ComparisonKPIPayload{
			CurrentValue:  cmp.Total.Current,
			PreviousValue: cmp.Total.Previous,
			Unit:          "records",
			ChangeText:    cmp.Total.Text,
			ChangeStatus:  cmp.Total.Status,
			CurrentLabel:  currLabel,
			PreviousLabel: prevLabel,
		},
	}}

	peakCurrLabel, peakPrevLabel := currLabel, prevLabel
	if cmp.Current.PeakDay != nil {
		peakCurrLabel = fmt.Sprintf("%s (%s)", currLabel, cmp.Current.PeakDay.Label)
	}
	if cmp.Previous.PeakDay != nil {
		peakPrevLabel = fmt.Sprintf("%s (%s)", prevLabel, cmp.Previous.PeakDay.Label)
	}
	comps = append(comps, Component{
		Type:         TypeComparisonKPI,
		Title:        "Daily Peak",
		SourceColumn: "peak_day",
		Icon:         "trending-up",
		Color:        "orange",
		Data: ComparisonKPIPayload{
			CurrentValue:  cmp.Peak.Current,
			PreviousValue: cmp.Peak.Previous,
			Unit:          "records",
			ChangeText:    cmp.Peak.Text,
			ChangeStatus:  cmp.Peak.Status,
			CurrentLabel:  peakCurrLabel,
			PreviousLabel: peakPrevLabel,
		},
	})

	for _, col := range cmp.Columns {
		comps = append(comps, Component{
			Type:         TypeComparisonBarChart,
			Title:        col.Column + " Comparison",
			SourceColumn: col.Column,
			Icon:         "pie-chart",
			Color:        "sky",
			Data: ComparisonBarChartPayload{
				Comparison:    col.Rows,
				CurrentLabel:  currLabel,
				PreviousLabel: prevLabel,
				CurrentColor:  "#0ea5e9",
				PreviousColor: "#38bdf8",
				Others: ComparisonOthers{
					Current:  col.CurrentOthers,
					Previous: col.PreviousOthers,
				},
			},
		})
	}
	return comps
}

// appendShared adds the components every non-cumulative report carries:
// the daily breakdown, the summary highlights and the month-of-year
// distribution.
func (e *Engine) appendShared(comps []Component, stats *MonthStats, month int, table *tabular.Table) []Component {
	if len(stats.Daily) > 0 {
		comps = append(comps, Component{
			Type:         TypeDailyBreakdown,
			Title:        monthName(month) + " Daily Breakdown",
			SourceColumn: "daily_breakdown",
			Icon:         "calendar",
			Color:        "cyan",
			Data:         DailyBreakdownPayload(stats.Daily),
		})
	}
	if items := e.summaryItems(stats); len(items) > 0 {
		comps = append(comps, Component{
			Type:         TypeSummary,
			Title:        monthName(month) + " Summary",
			SourceColumn: "summary",
			Icon:         "alert-triangle",
			Color:        "rose",
			Data:         SummaryPayload{Items: items},
		})
	}
	if monthly, ok := e.monthlyDistribution(table); ok {
		comps = append(comps, monthly)
	}
	return comps
}

// summaryItems keeps each column's leading category and turns the biggest
// few into highlight lines.
func (e *Engine) summaryItems(stats *MonthStats) []string {
	tops := make([]CategoryCount, 0, len(stats.Distributions))
	for _, d := range stats.Distributions {
		if len(d.Items) > 0 {
			tops = append(tops, d.Items[0])
		}
	}
	sort.SliceStable(tops, func(i, j int) bool { return tops[i].Count > tops[j].Count })
	if len(tops) > e.opts.MaxSummaryItems {
		tops = tops[:e.opts.MaxSummaryItems]
	}

	items := make([]string, len(tops))
	for i, t := range tops {
		items[i] = fmt.Sprintf("[%s] %d records", t.Name, t.Count)
	}
	return items
}

// monthlyDistribution builds a month-of-year breakdown from the first
// configured travel-date style column present in the table. It scans the
// full dataset, not the filtered window, because trip dates typically lie
// outside the reporting month.
func (e *Engine) monthlyDistribution(table *tabular.Table) (Component, bool) {
	col := ""
	for _, candidate := range e.opts.MonthlyDistributionColumns {
		for _, c := range table.Columns {
			if c == candidate {
				col = candidate
				break
			}
		}
		if col != "" {
			break
		}
	}
	if col == "" {
		return Component{}, false
	}

	counts := map[int]int{}
	for _, rec := range table.Rows {
		if t, ok := rec.Get(col).Date(); ok {
			counts[int(t.Month())]++
		}
	}
	if len(counts) == 0 {
		return Component{}, false
	}

	months := make([]int, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		if counts[months[i]] != counts[months[j]] {
			return counts[months[i]] > counts[months[j]]
		}
		return months[i] < months[j]
	})
	if len(months) > e.opts.MaxMonthlyDistributionMonths {
		months = months[:e.opts.MaxMonthlyDistributionMonths]
	}

	items := make(BarChartPayload, len(months))
	for i, m := range months {
		items[i] = CategoryCount{Name: monthShort(m), Count: counts[m]}
	}
	return Component{
		Type:         TypeBarChart,
		Title:        col + " by Month",
		SourceColumn: col,
		Icon:         "calendar",
		Color:        "orange",
		Data:         items,
	}, true
}

// buildCumulative infers the best date column over the whole table, sums
// every numeric column per month up to the target, and emits one
// standalone column component per measure plus a combined trend chart
// carrying the running totals.
func (e *Engine) buildCumulative(table *tabular.Table, year, month int) ([]Component, error) {
	dateCol, ok := inferDateColumn(table)
	if !ok {
		return nil, apperrors.ErrNoDateColumn
	}

	var measures []Measure
	for _, col := range table.Columns {
		if col == dateCol {
			continue
		}
		if columnHasNumbers(table, col) {
			measures = append(measures, SumMeasure(col))
		}
	}
	if len(measures) == 0 {
		return nil, apperrors.ErrNoNumericColumns
	}

	cum, err := e.ComputeCumulative(table.Rows, dateCol, measures, year, month)
	if err != nil {
		return nil, err
	}

	comps := make([]Component, 0, len(cum.Series)+1)
	trend := CumulativeChartPayload{Labels: cum.Labels}
	for i, s := range cum.Series {
		color := cumulativePalette[i%len(cumulativePalette)]
		comps = append(comps, Component{
			Type:         TypeCumulativeColumn,
			Title:        s.Name,
			SourceColumn: s.Name,
			Icon:         "bar-chart",
			Color:        color,
			Data: CumulativeColumnPayload{
				ColumnName: s.Name,
				Labels:     cum.Labels,
				Values:     s.Values,
				ChartType:  "bar",
			},
		})
		trend.Series = append(trend.Series,
			CumulativeSeries{Name: s.Name, Kind: "bar", Color: color, Values: s.Values},
			CumulativeSeries{Name: s.Name + " (cumulative)", Kind: "line", Color: color, Values: s.Running},
		)
	}
	comps = append(comps, Component{
		Type:         TypeCumulativeChart,
		Title:        "Cumulative Trend",
		SourceColumn: dateCol,
		Icon:         "trending-up",
		Color:        "indigo",
		Data:         trend,
	})
	return comps, nil
}

// inferDateColumn picks the column with the highest date-parse ratio over
// the full table, header order breaking ties. ok is false when nothing
// parses at all.
func inferDateColumn(table *tabular.Table) (string, bool) {
	best, bestRatio := "", 0.0
	for _, col := range table.Columns {
		parsed := 0
		for _, rec := range table.Rows {
			if _, ok := rec.Get(col).Date(); ok {
				parsed++
			}
		}
		ratio := float64(parsed) / float64(len(table.Rows))
		if ratio > bestRatio {
			best, bestRatio = col, ratio
		}
	}
	return best, bestRatio > 0
}

func columnHasNumbers(table *tabular.Table, col string) bool {
	for _, rec := range table.Rows {
		if _, ok := rec.Get(col).Float(); ok {
			return true
		}
	}
	return false
}
