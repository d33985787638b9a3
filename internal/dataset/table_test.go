// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package dataset

import (
	"testing"
)

func TestNewRejectsBadColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{name: "empty column list", columns: nil},
		{name: "empty column name", columns: []string{"A", ""}},
		{name: "duplicate column", columns: []string{"A", "B", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.columns); err == nil {
				t.Fatalf("New(%v) = nil error, want error", tt.columns)
			}
		})
	}
}

func TestAppendRowLengthMismatch(t *testing.T) {
	tbl, err := New([]string{"A", "B"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := tbl.AppendRow([]Value{Number(1)}); err == nil {
		t.Fatal("AppendRow() with short row = nil error, want error")
	}
}

func TestColumnAccessors(t *testing.T) {
	tbl, err := New([]string{"Name", "Age"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rows := [][]Value{
		{String("ada"), Number(36)},
		{String("grace"), Missing},
	}
	for _, row := range rows {
		if err := tbl.AppendRow(row); err != nil {
			t.Fatalf("AppendRow() error = %v", err)
		}
	}

	if !tbl.HasColumn("Age") || tbl.HasColumn("Salary") {
		t.Error("HasColumn() misreported columns")
	}

	col, ok := tbl.Column("Age")
	if !ok || len(col) != 2 {
		t.Fatalf("Column(Age) = %v, %v", col, ok)
	}
	if n, ok := col[0].Number(); !ok || n != 36 {
		t.Errorf("Column(Age)[0] = %v, want 36", col[0])
	}
	if !col[1].IsMissing() {
		t.Errorf("Column(Age)[1] = %v, want missing", col[1])
	}

	if got := tbl.Value(1, "Name"); got.Canonical() != "grace" {
		t.Errorf("Value(1, Name) = %q, want grace", got.Canonical())
	}
	if got := tbl.Value(5, "Name"); !got.IsMissing() {
		t.Errorf("Value out of range = %v, want missing", got)
	}

	row := tbl.Row(0)
	if row["Name"].Canonical() != "ada" {
		t.Errorf("Row(0)[Name] = %q, want ada", row["Name"].Canonical())
	}
	if tbl.Row(9) != nil {
		t.Error("Row out of range != nil")
	}
}

func TestSelect(t *testing.T) {
	tbl, _ := New([]string{"A"})
	for i := 0; i < 4; i++ {
		_ = tbl.AppendRow([]Value{Number(float64(i))})
	}

	sub, err := tbl.Select([]int{3, 1})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sub.NumRows() != 2 {
		t.Fatalf("Select() rows = %d, want 2", sub.NumRows())
	}
	if n, _ := sub.Value(0, "A").Number(); n != 3 {
		t.Errorf("Select()[0] = %v, want 3", n)
	}

	if _, err := tbl.Select([]int{4}); err == nil {
		t.Error("Select() out of range = nil error, want error")
	}
}

func TestNumericColumn(t *testing.T) {
	tbl, _ := New([]string{"Mixed", "Nums", "Gaps"})
	_ = tbl.AppendRow([]Value{Number(1), Number(5), Missing})
	_ = tbl.AppendRow([]Value{String("x"), Number(6), Missing})

	if numeric, ok := tbl.NumericColumn("Mixed"); !ok || numeric {
		t.Errorf("NumericColumn(Mixed) = %v, %v, want false, true", numeric, ok)
	}
	if numeric, ok := tbl.NumericColumn("Nums"); !ok || !numeric {
		t.Errorf("NumericColumn(Nums) = %v, %v, want true, true", numeric, ok)
	}
	// All-missing counts as numeric.
	if numeric, ok := tbl.NumericColumn("Gaps"); !ok || !numeric {
		t.Errorf("NumericColumn(Gaps) = %v, %v, want true, true", numeric, ok)
	}
	if _, ok := tbl.NumericColumn("Absent"); ok {
		t.Error("NumericColumn(Absent) ok = true, want false")
	}
}

func TestDistinctCount(t *testing.T) {
	tbl, _ := New([]string{"Dept"})
	for _, v := range []Value{String("IT"), String("HR"), String("IT"), Missing, Number(2), Number(2.0)} {
		_ = tbl.AppendRow([]Value{v})
	}
	// "IT", "HR", and "2" — 2 and 2.0 share a canonical form, missing
	// is skipped.
	if got := tbl.DistinctCount("Dept"); got != 3 {
		t.Errorf("DistinctCount() = %d, want 3", got)
	}
}

func TestCanonicalForms(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(2), "2"},
		{Number(2.5), "2.5"},
		{Number(0.1), "0.1"},
		{String("IT"), "IT"},
		{Missing, ""},
		{Bool(true), "1"},
		{Bool(false), "0"},
	}
	for _, tt := range tests {
		if got := tt.v.Canonical(); got != tt.want {
			t.Errorf("Canonical(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
