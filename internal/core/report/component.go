package report

// ComponentType tags the closed set of infographic component shapes.
// Renderers switch on the tag; adding a tag is an API change.
type ComponentType string

const (
	TypeKPI                ComponentType = "kpi"
	TypeBarChart           ComponentType = "bar_chart"
	TypeComparisonKPI      ComponentType = "comparison_kpi"
	TypeComparisonBarChart ComponentType = "comparison_bar_chart"
	TypeDailyBreakdown     ComponentType = "daily_breakdown"
	TypeSummary            ComponentType = "summary"
	TypeCumulativeChart    ComponentType = "cumulative_chart"
	TypeCumulativeColumn   ComponentType = "cumulative_column"
)

// Component is one renderable infographic block. It is inert data: the
// engine builds it, the renderer consumes it, nothing mutates it in
// between.
type Component struct {
	Type         ComponentType `json:"component_type"`
	Title        string        `json:"title"`
	SourceColumn string        `json:"source_column"`
	Icon         string        `json:"icon"`
	Color        string        `json:"color"`
	Data         Payload       `json:"data"`
}

// Payload is the per-tag data shape. The implementation set is sealed so
// renderers can handle every shape exhaustively.
type Payload interface {
	// Empty reports whether the payload carries nothing worth rendering.
	// Empty payloads are dropped before a report is returned.
	Empty() bool

	payload()
}

// CategoryCount is one (name, count) entry of a ranked distribution.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is one calendar day's record count. Date is ISO yyyy-mm-dd;
// Label is the display form.
type DayCount struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// KPIPayload backs the kpi tag: a single headline number.
type KPIPayload struct {
	Value    int    `json:"value"`
	Unit     string `json:"unit"`
	Subtitle string `json:"subtitle"`
}

func (KPIPayload) Empty() bool { return false }
func (KPIPayload) payload()    {}

// BarChartPayload backs the bar_chart tag. It marshals as a bare array,
// which is what chart renderers consume directly.
type BarChartPayload []CategoryCount

func (p BarChartPayload) Empty() bool { return len(p) == 0 }
func (BarChartPayload) payload()      {}

// ComparisonKPIPayload backs the comparison_kpi tag: one value measured
// in two adjacent months plus the classified change between them.
type ComparisonKPIPayload struct {
	CurrentValue  int          `json:"current_value"`
	PreviousValue int          `json:"previous_value"`
	Unit          string       `json:"unit"`
	ChangeText    string       `json:"change_text"`
	ChangeStatus  ChangeStatus `json:"change_status"`
	CurrentLabel  string       `json:"current_label"`
	PreviousLabel string       `json:"previous_label"`
}

func (ComparisonKPIPayload) Empty() bool { return false }
func (ComparisonKPIPayload) payload()    {}

// CategoryComparison aligns one category's count across two months.
type CategoryComparison struct {
	Name         string `json:"name"`
	CurrentCount int    `json:"current_count"`
	PrevCount    int    `json:"prev_count"`
}

// ComparisonOthers carries the below-top-N remainders of both months so
// renderers can surface an overflow hint without an artificial bar.
type ComparisonOthers struct {
	Current  []CategoryCount `json:"current"`
	Previous []CategoryCount `json:"previous"`
}

// ComparisonBarChartPayload backs the comparison_bar_chart tag.
type ComparisonBarChartPayload struct {
	Comparison    []CategoryComparison `json:"comparison"`
	CurrentLabel  string               `json:"current_label"`
	PreviousLabel string               `json:"previous_label"`
	CurrentColor  string               `json:"current_color"`
	PreviousColor string               `json:"previous_color"`
	Others        ComparisonOthers     `json:"others"`
}

func (p ComparisonBarChartPayload) Empty() bool { return len(p.Comparison) == 0 }
func (ComparisonBarChartPayload) payload()      {}

// DailyBreakdownPayload backs the daily_breakdown tag: the busiest days
// of the window, count descending. Marshals as a bare array.
type DailyBreakdownPayload []DayCount

func (p DailyBreakdownPayload) Empty() bool { return len(p) == 0 }
func (DailyBreakdownPayload) payload()      {}

// SummaryPayload backs the summary tag: short highlight lines.
type SummaryPayload struct {
	Items []string `json:"items"`
}

func (p SummaryPayload) Empty() bool { return len(p.Items) == 0 }
func (SummaryPayload) payload()      {}

// CumulativeSeries is one series of a combined cumulative chart. Kind is
// "bar" for per-month values and "line" for running totals.
type CumulativeSeries struct {
	Name   string `json:"name"`
	Kind   string `json:"type"`
	Color  string `json:"color"`
	Values []int  `json:"values"`
}

// CumulativeChartPayload backs the cumulative_chart tag: every measure's
// monthly values and running totals over one shared month axis.
type CumulativeChartPayload struct {
	Labels []string           `json:"labels"`
	Series []CumulativeSeries `json:"series"`
}

func (p CumulativeChartPayload) Empty() bool {
	return len(p.Labels) == 0 || len(p.Series) == 0
}
func (CumulativeChartPayload) payload() {}

// CumulativeColumnPayload backs the cumulative_column tag: one measure's
// monthly values, rendered standalone.
type CumulativeColumnPayload struct {
	ColumnName string   `json:"column_name"`
	Labels     []string `json:"labels"`
	Values     []int    `json:"values"`
	ChartType  string   `json:"chart_type"`
}

func (p CumulativeColumnPayload) Empty() bool { return len(p.Labels) == 0 }
func (CumulativeColumnPayload) payload()      {}

// dropEmpty filters out components whose payload has nothing to render.
// Callers never see empty-payload components.
func dropEmpty(components []Component) []Component {
	out := make([]Component, 0, len(components))
	for _, c := range components {
		if c.Data == nil || c.Data.Empty() {
			continue
		}
		out = append(out, c)
	}
	return out
}
