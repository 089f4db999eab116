// Package record defines the tables, field schemas, and record shape used by
// the scouting data store.
package record

import (
	"strconv"
	"strings"
)

// Table names a persisted record collection. Each table is one JSON file.
type Table string

// The four tables of the system.
const (
	TablePosition Table = "Position"
	TableScout    Table = "Scout"
	TablePlayer   Table = "Player"
	TableReport   Table = "Report"
)

// Tables lists every known table.
func Tables() []Table {
	return []Table{TablePosition, TableScout, TablePlayer, TableReport}
}

// ParseTable resolves a table by name, case-insensitively.
func ParseTable(name string) (Table, bool) {
	for _, t := range Tables() {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// Record is one row of a table: a field-name to scalar-value mapping.
// Scalars are strings or numbers as decoded from JSON.
type Record map[string]any

// Text returns the field as a display string; absent fields are "".
func (r Record) Text(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Numeric coerces the field to a float64. Non-numeric values and absent
// fields report ok=false.
func (r Record) Numeric(field string) (float64, bool) {
	return Numeric(r[field])
}

// Rated returns the field as a usable rating: numeric and strictly
// positive. A value of exactly 0 means "not rated" and reports ok=false.
func (r Record) Rated(field string) (float64, bool) {
	v, ok := r.Numeric(field)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// Blank reports whether the value counts as an empty field: nil or a
// string of only whitespace. Blank fields are dropped on save.
func Blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// Numeric coerces a scalar to float64. Strings are parsed; anything
// non-numeric reports ok=false.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
