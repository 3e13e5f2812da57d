// Package schema resolves which columns of an ingested table act as the
// date axis, the categorical axes and the free-text axis. The analysis
// engine consumes the resolved schema; it never re-detects columns itself.
package schema

// Schema names the roles of a table's columns. CategoricalColumns keeps
// header order, which determines the order of generated report components.
type Schema struct {
	DateColumn         string   `json:"dateColumn,omitempty"`
	TextualColumn      string   `json:"textualColumn,omitempty"`
	CategoricalColumns []string `json:"categoricalColumns"`
}

// HasDateColumn reports whether a date axis was resolved.
func (s Schema) HasDateColumn() bool {
	return s.DateColumn != ""
}
