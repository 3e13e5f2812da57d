package schema

import (
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/tabular"
)

// Options tunes column detection. Zero fields fall back to the defaults.
type Options struct {
	// PreferredDateColumns are matched against headers before any value
	// sampling happens. First match wins.
	PreferredDateColumns []string
	// PreferredTextColumns are matched the same way for the free-text axis.
	PreferredTextColumns []string
	// DateMinRatio is the minimum share of values that must parse as dates
	// for a column to qualify as the date axis.
	DateMinRatio float64
	// TextMinAvgLength is the minimum average value length for a column to
	// qualify as the free-text axis.
	TextMinAvgLength float64
}

// DefaultOptions returns the detection thresholds used when the caller does
// not configure its own.
func DefaultOptions() Options {
	return Options{
		PreferredDateColumns: []string{"날짜", "date", "일자", "접수일", "작성일"},
		PreferredTextColumns: []string{"문의 내용", "content", "내용", "설명", "description", "메모"},
		DateMinRatio:         0.5,
		TextMinAvgLength:     20.0,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.PreferredDateColumns == nil {
		o.PreferredDateColumns = def.PreferredDateColumns
	}
	if o.PreferredTextColumns == nil {
		o.PreferredTextColumns = def.PreferredTextColumns
	}
	if o.DateMinRatio <= 0 {
		o.DateMinRatio = def.DateMinRatio
	}
	if o.TextMinAvgLength <= 0 {
		o.TextMinAvgLength = def.TextMinAvgLength
	}
	return o
}

// Detect resolves the date, free-text and categorical columns of a table.
//
// The date axis is the first preferred header name present, otherwise the
// column with the highest date-parse success ratio at or above
// DateMinRatio (ties keep the earlier header). The free-text axis is the
// first preferred name present, otherwise the non-numeric column with the
// longest average value length at or above TextMinAvgLength; the date
// column never doubles as the text column. Every remaining column is
// categorical, in header order.
func Detect(table *tabular.Table, opts Options) Schema {
	if table == nil || len(table.Rows) == 0 || len(table.Columns) == 0 {
		return Schema{CategoricalColumns: []string{}}
	}
	opts = opts.withDefaults()

	dateColumn := detectDateColumn(table, opts)
	textColumn := detectTextColumn(table, opts, dateColumn)

	categorical := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		if col != dateColumn && col != textColumn {
			categorical = append(categorical, col)
		}
	}

	return Schema{
		DateColumn:         dateColumn,
		TextualColumn:      textColumn,
		CategoricalColumns: categorical,
	}
}

func detectDateColumn(table *tabular.Table, opts Options) string {
	for _, preferred := range opts.PreferredDateColumns {
		if hasColumn(table, preferred) {
			return preferred
		}
	}

	best := ""
	bestRatio := 0.0
	for _, col := range table.Columns {
		parsed := 0
		for _, row := range table.Rows {
			if _, ok := row.Get(col).Date(); ok {
				parsed++
			}
		}
		ratio := float64(parsed) / float64(len(table.Rows))
		if ratio >= opts.DateMinRatio && ratio > bestRatio {
			best = col
			bestRatio = ratio
		}
	}
	return best
}

func detectTextColumn(table *tabular.Table, opts Options, dateColumn string) string {
	for _, preferred := range opts.PreferredTextColumns {
		if preferred != dateColumn && hasColumn(table, preferred) {
			return preferred
		}
	}

	best := ""
	bestLen := -1.0
	for _, col := range table.Columns {
		if col == dateColumn || numericColumn(table, col) {
			continue
		}
		total, count := 0, 0
		for _, row := range table.Rows {
			v := row.Get(col)
			if v.IsAbsent() {
				continue
			}
			total += len([]rune(v.Text()))
			count++
		}
		if count == 0 {
			continue
		}
		avg := float64(total) / float64(count)
		if avg >= opts.TextMinAvgLength && avg > bestLen {
			best = col
			bestLen = avg
		}
	}
	return best
}

// numericColumn reports whether every present cell of the column is a
// number. Such columns are measure candidates, never free text.
func numericColumn(table *tabular.Table, col string) bool {
	present := 0
	for _, row := range table.Rows {
		v := row.Get(col)
		if v.IsAbsent() {
			continue
		}
		present++
		if v.Kind() != tabular.KindNumber {
			return false
		}
	}
	return present > 0
}

func hasColumn(table *tabular.Table, name string) bool {
	for _, col := range table.Columns {
		if col == name {
			return true
		}
	}
	return false
}
