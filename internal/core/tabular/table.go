// Package tabular holds the typed row model consumed by the analysis engine
// and the coercion helpers that turn raw spreadsheet cells into dates and
// numbers. Everything here is pure: no I/O, no shared state.
package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Table is an ordered set of ingested rows. Columns preserves the order in
// which column names first appear across the rows; that order is
// significant downstream because it drives the order of generated report
// components.
type Table struct {
	Columns []string
	Rows    []Record
}

// ParseRows decodes a JSON array of objects into a Table. Column names are
// trimmed, and their first-seen order is preserved by walking the document
// token by token instead of unmarshalling into maps. Null cells become the
// absent marker; nested objects and arrays are kept as their compact JSON
// text.
func ParseRows(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("decode rows: expected an array, got %v", tok)
	}

	table := &Table{}
	seen := make(map[string]struct{})

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode rows: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return nil, fmt.Errorf("decode rows: expected an object, got %v", tok)
		}

		row := make(Record)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("decode rows: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("decode rows: expected an object key, got %v", keyTok)
			}
			name := strings.TrimSpace(key)

			var raw interface{}
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("decode rows: column %q: %w", name, err)
			}

			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				table.Columns = append(table.Columns, name)
			}
			row[name] = cellValue(raw)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("decode rows: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}

	return table, nil
}

func cellValue(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Absent()
	case string:
		return String(v)
	case json.Number:
		if f, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return Number(f)
		}
		return String(v.String())
	case bool:
		return String(strconv.FormatBool(v))
	default:
		// Nested structures are rare in spreadsheet exports; keep their
		// JSON text so grouping still has a stable key.
		if b, err := json.Marshal(v); err == nil {
			return String(string(b))
		}
		return String(fmt.Sprint(v))
	}
}
