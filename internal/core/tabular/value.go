package tabular

import (
	"strconv"
	"time"
)

// Kind identifies the type carried by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindDate
)

// Value is a single typed cell. Cells arrive from ingestion already coerced
// to one of string, number, date or absent; the analysis engine never
// mutates them.
type Value struct {
	kind Kind
	str  string
	num  float64
	date time.Time
}

// Absent returns the marker for a missing cell.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// String wraps a string cell.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number wraps a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Date wraps a date cell.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Kind returns the kind of the cell.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the cell is missing.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Text returns the cell rendered as a string. Absent cells render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}

// Date returns the cell as a date. String cells are parsed with ParseDate;
// numeric and absent cells never qualify.
func (v Value) Date() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.date, true
	case KindString:
		return ParseDate(v.str)
	default:
		return time.Time{}, false
	}
}

// Float returns the cell as a number. String cells are coerced with
// ParseNumber.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		return ParseNumber(v.str)
	default:
		return 0, false
	}
}

// Record is one row of ingested tabular data keyed by column name.
type Record map[string]Value

// Get returns the cell for the named column, or the absent marker when the
// row does not carry it.
func (r Record) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return Absent()
}
