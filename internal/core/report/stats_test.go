package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizlet-labs/vizlet-backend-go/internal/core/normalize"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/schema"
)

func testEngine() *Engine {
	return NewEngine(Options{}, nil, nil)
}

func TestComputeMonthStatsEmpty(t *testing.T) {
	assert.Nil(t, testEngine().ComputeMonthStats(nil, schema.Schema{}))
}

func TestComputeMonthStatsBasic(t *testing.T) {
	records := recs(t,
		map[string]any{"date": "2025-08-01", "cat": "A"},
		map[string]any{"date": "2025-08-01", "cat": "A"},
		map[string]any{"date": "2025-08-02", "cat": "B"},
	)
	sch := schema.Schema{DateColumn: "date", CategoricalColumns: []string{"cat"}}

	stats := testEngine().ComputeMonthStats(records, sch)
	require.NotNil(t, stats)

	assert.Equal(t, 3, stats.TotalCount)

	require.NotNil(t, stats.PeakDay)
	assert.Equal(t, "2025-08-01", stats.PeakDay.Date)
	assert.Equal(t, 2, stats.PeakDay.Count)
	assert.Equal(t, "Aug 1", stats.PeakDay.Label)

	require.Len(t, stats.Distributions, 1)
	assert.Equal(t, "cat", stats.Distributions[0].Column)
	assert.Equal(t, []CategoryCount{{Name: "A", Count: 2}, {Name: "B", Count: 1}}, stats.Distributions[0].Items)
}

func TestComputeMonthStatsPeakTieEarliestDate(t *testing.T) {
	records := recs(t,
		map[string]any{"date": "2025-08-09"},
		map[string]any{"date": "2025-08-03"},
		map[string]any{"date": "2025-08-09"},
		map[string]any{"date": "2025-08-03"},
	)
	stats := testEngine().ComputeMonthStats(records, schema.Schema{DateColumn: "date"})

	require.NotNil(t, stats.PeakDay)
	assert.Equal(t, "2025-08-03", stats.PeakDay.Date)
	assert.Equal(t, 2, stats.PeakDay.Count)
}

func TestComputeMonthStatsDailyList(t *testing.T) {
	records := recs(t,
		map[string]any{"date": "2025-08-02"},
		map[string]any{"date": "2025-08-02"},
		map[string]any{"date": "2025-08-01"},
		map[string]any{"date": "2025-08-03"},
	)
	stats := testEngine().ComputeMonthStats(records, schema.Schema{DateColumn: "date"})

	require.Len(t, stats.Daily, 3)
	assert.Equal(t, DayCount{Date: "2025-08-02", Label: "Aug 2 (Sat)", Count: 2}, stats.Daily[0])
	assert.Equal(t, DayCount{Date: "2025-08-01", Label: "Aug 1 (Fri)", Count: 1}, stats.Daily[1])
	assert.Equal(t, DayCount{Date: "2025-08-03", Label: "Aug 3 (Sun)", Count: 1}, stats.Daily[2])
}

func TestComputeMonthStatsDailyCapped(t *testing.T) {
	records := recs(t,
		map[string]any{"date": "2025-08-01"},
		map[string]any{"date": "2025-08-02"},
		map[string]any{"date": "2025-08-03"},
	)
	e := NewEngine(Options{MaxDailyBreakdownDays: 2}, nil, nil)

	stats := e.ComputeMonthStats(records, schema.Schema{DateColumn: "date"})
	assert.Len(t, stats.Daily, 2)
}

func TestComputeMonthStatsNoParseableDates(t *testing.T) {
	records := recs(t,
		map[string]any{"date": "n/a", "cat": "A"},
		map[string]any{"date": nil, "cat": "B"},
	)
	sch := schema.Schema{DateColumn: "date", CategoricalColumns: []string{"cat"}}

	stats := testEngine().ComputeMonthStats(records, sch)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.TotalCount)
	assert.Nil(t, stats.PeakDay)
	assert.Empty(t, stats.Daily)
}

func TestDistributionTopAndOthers(t *testing.T) {
	var cells []map[string]any
	counts := map[string]int{"a": 6, "b": 5, "c": 4, "d": 3, "e": 2, "f": 1}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		for i := 0; i < counts[name]; i++ {
			cells = append(cells, map[string]any{"cat": name})
		}
	}
	stats := testEngine().ComputeMonthStats(recs(t, cells...), schema.Schema{CategoricalColumns: []string{"cat"}})

	dist := stats.Distributions[0]
	require.Len(t, dist.Items, 5)
	assert.Equal(t, CategoryCount{Name: "a", Count: 6}, dist.Items[0])
	assert.Equal(t, CategoryCount{Name: "e", Count: 2}, dist.Items[4])
	assert.Equal(t, []CategoryCount{{Name: "f", Count: 1}}, dist.Others)
}

func TestDistributionTieKeepsFirstSeenOrder(t *testing.T) {
	records := recs(t,
		map[string]any{"cat": "B"},
		map[string]any{"cat": "A"},
		map[string]any{"cat": "B"},
		map[string]any{"cat": "A"},
	)
	stats := testEngine().ComputeMonthStats(records, schema.Schema{CategoricalColumns: []string{"cat"}})

	assert.Equal(t, []CategoryCount{{Name: "B", Count: 2}, {Name: "A", Count: 2}}, stats.Distributions[0].Items)
}

func TestDistributionSkipsAbsentValues(t *testing.T) {
	records := recs(t,
		map[string]any{"cat": "A"},
		map[string]any{"cat": nil},
		map[string]any{"cat": "  "},
		map[string]any{"other": "x"},
	)
	stats := testEngine().ComputeMonthStats(records, schema.Schema{CategoricalColumns: []string{"cat"}})

	// absent and blank cells stay out of the grouping but count toward the total
	assert.Equal(t, 4, stats.TotalCount)
	assert.Equal(t, []CategoryCount{{Name: "A", Count: 1}}, stats.Distributions[0].Items)
}

func TestDistributionMissingColumn(t *testing.T) {
	records := recs(t, map[string]any{"cat": "A"})
	stats := testEngine().ComputeMonthStats(records, schema.Schema{CategoricalColumns: []string{"ghost"}})

	require.Len(t, stats.Distributions, 1)
	assert.Equal(t, "ghost", stats.Distributions[0].Column)
	assert.Empty(t, stats.Distributions[0].Items)
}

func TestDistributionNormalizesValues(t *testing.T) {
	n := normalize.New(&normalize.Rules{
		Exact: map[string][]string{"SNS": {"sns", "s.n.s"}},
	})
	e := NewEngine(Options{}, n, nil)

	records := recs(t,
		map[string]any{"channel": "SNS"},
		map[string]any{"channel": "s.n.s"},
		map[string]any{"channel": " sns "},
		map[string]any{"channel": "전화"},
	)
	stats := e.ComputeMonthStats(records, schema.Schema{CategoricalColumns: []string{"channel"}})

	assert.Equal(t, []CategoryCount{{Name: "SNS", Count: 3}, {Name: "전화", Count: 1}}, stats.Distributions[0].Items)
}

func TestDistributionGroupsNumbersByText(t *testing.T) {
	records := recs(t,
		map[string]any{"code": 404},
		map[string]any{"code": 404},
		map[string]any{"code": 500},
	)
	stats := testEngine().ComputeMonthStats(records, schema.Schema{CategoricalColumns: []string{"code"}})

	assert.Equal(t, []CategoryCount{{Name: "404", Count: 2}, {Name: "500", Count: 1}}, stats.Distributions[0].Items)
}
