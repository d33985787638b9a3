// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package dataset

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a cell value.
type Kind int

const (
	// KindMissing marks an absent value. Missing values are imputed by the
	// feature codec; they never cause an error on their own.
	KindMissing Kind = iota
	// KindNumber is a numeric cell (stored as float64).
	KindNumber
	// KindString is a textual cell.
	KindString
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single cell in a Table.
// The zero value is the missing marker.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Missing is the canonical absent-value cell.
var Missing = Value{kind: KindMissing}

// Number creates a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String creates a textual cell.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool creates a numeric cell encoding a boolean as 1 or 0.
// Binary labels and yes/no attributes are represented this way so the
// target column and low-arity flags share one numeric representation.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

// Kind returns the cell's type.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the cell is absent.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Number returns the numeric content. The second return is false for
// non-numeric cells.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Text returns the string content. The second return is false for
// non-string cells.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Canonical returns the canonical string form of the cell. Numbers use the
// shortest representation that round-trips (strconv 'g', -1). Categorical
// vocabularies and one-hot feature names are keyed on this form, so it must
// be stable across processes.
func (v Value) Canonical() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Table is an ordered-column, row-major tabular dataset.
// It is not safe for concurrent mutation; the pipeline treats tables as
// immutable once built.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New creates an empty table with the given column names, preserving order.
// Duplicate or empty column names are rejected.
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset: table requires at least one column")
	}

	index := make(map[string]int, len(columns))
	cols := make([]string, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("dataset: column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("dataset: duplicate column %q", name)
		}
		index[name] = i
		cols[i] = name
	}

	return &Table{cols: cols, index: index}, nil
}

// AppendRow adds a row. The row length must match the column count.
func (t *Table) AppendRow(row []Value) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("dataset: row has %d cells, table has %d columns", len(row), len(t.cols))
	}
	t.rows = append(t.rows, row)
	return nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Columns returns the column names in their original order.
// The returned slice must not be mutated.
func (t *Table) Columns() []string {
	return t.cols
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) ([]Value, bool) {
	ci, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[ci]
	}
	return out, true
}

// Value returns the cell at (row, column name). Missing is returned for an
// unknown column; use HasColumn to distinguish.
func (t *Table) Value(row int, name string) Value {
	ci, ok := t.index[name]
	if !ok || row < 0 || row >= len(t.rows) {
		return Missing
	}
	return t.rows[row][ci]
}

// Row returns the cells of one row keyed by column name.
func (t *Table) Row(i int) map[string]Value {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	out := make(map[string]Value, len(t.cols))
	for ci, name := range t.cols {
		out[name] = t.rows[i][ci]
	}
	return out
}

// Select returns a new table sharing this table's rows restricted to the
// given row indices. Out-of-range indices are rejected.
func (t *Table) Select(rows []int) (*Table, error) {
	out := &Table{cols: t.cols, index: t.index}
	out.rows = make([][]Value, 0, len(rows))
	for _, ri := range rows {
		if ri < 0 || ri >= len(t.rows) {
			return nil, fmt.Errorf("dataset: row index %d out of range [0,%d)", ri, len(t.rows))
		}
		out.rows = append(out.rows, t.rows[ri])
	}
	return out, nil
}

// NumericColumn reports whether every non-missing cell in the named column
// is numeric. An all-missing column counts as numeric. The second return is
// false if the column does not exist.
func (t *Table) NumericColumn(name string) (numeric, ok bool) {
	ci, exists := t.index[name]
	if !exists {
		return false, false
	}
	for _, row := range t.rows {
		v := row[ci]
		if v.IsMissing() {
			continue
		}
		if v.Kind() != KindNumber {
			return false, true
		}
	}
	return true, true
}

// DistinctCount returns the number of distinct non-missing values in the
// named column, keyed by canonical string form.
func (t *Table) DistinctCount(name string) int {
	ci, ok := t.index[name]
	if !ok {
		return 0
	}
	seen := make(map[string]struct{})
	for _, row := range t.rows {
		v := row[ci]
		if v.IsMissing() {
			continue
		}
		seen[v.Canonical()] = struct{}{}
	}
	return len(seen)
}
