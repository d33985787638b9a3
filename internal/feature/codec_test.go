// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package feature

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/praedictus/internal/dataset"
)

func buildTable(t *testing.T, columns []string, rows [][]dataset.Value) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(columns)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	for _, row := range rows {
		if err := tbl.AppendRow(row); err != nil {
			t.Fatalf("AppendRow() error = %v", err)
		}
	}
	return tbl
}

// salaryTable has one continuous column (12 distinct values keeps it
// above the categorical arity threshold) and one categorical column.
func salaryTable(t *testing.T) *dataset.Table {
	t.Helper()
	columns := []string{"Employee_ID", "Monthly_Salary", "Department", "Attrition"}
	rows := make([][]dataset.Value, 0, 12)
	departments := []string{"IT", "Sales", "HR"}
	for i := 0; i < 12; i++ {
		rows = append(rows, []dataset.Value{
			dataset.String(string(rune('A' + i))),
			dataset.Number(4000 + float64(i)*250),
			dataset.String(departments[i%3]),
			dataset.Bool(i%4 == 0),
		})
	}
	return buildTable(t, columns, rows)
}

func TestFitMissingColumns(t *testing.T) {
	tbl := salaryTable(t)
	codec := NewCodec()

	_, _, _, err := codec.Fit(tbl, "Quit", "Employee_ID")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Column != "Quit" {
		t.Fatalf("Fit() error = %v, want SchemaError for Quit", err)
	}

	_, _, _, err = codec.Fit(tbl, "Attrition", "Badge")
	if !errors.As(err, &schemaErr) || schemaErr.Column != "Badge" {
		t.Fatalf("Fit() error = %v, want SchemaError for Badge", err)
	}
}

func TestFitFeatureLayout(t *testing.T) {
	tbl := salaryTable(t)
	codec := NewCodec()

	x, y, fitted, err := codec.Fit(tbl, "Attrition", "Employee_ID")
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if len(x) != 12 || len(y) != 12 {
		t.Fatalf("Fit() returned %d rows, %d labels, want 12 each", len(x), len(y))
	}

	// One standardized salary feature plus three department indicators,
	// continuous features first.
	wantNames := []string{
		"Monthly_Salary",
		"Department=HR", "Department=IT", "Department=Sales",
	}
	if !reflect.DeepEqual(fitted.FeatureNames, wantNames) {
		t.Fatalf("FeatureNames = %v, want %v", fitted.FeatureNames, wantNames)
	}
	if fitted.Dim() != 4 {
		t.Errorf("Dim() = %d, want 4", fitted.Dim())
	}
	if !fitted.NumericFeature(0) || fitted.NumericFeature(1) {
		t.Error("NumericFeature misclassifies features")
	}

	// Each row's one-hot block sums to exactly one: all values are known.
	for i, row := range x {
		sum := row[1] + row[2] + row[3]
		if sum != 1 {
			t.Errorf("row %d one-hot sum = %v, want 1", i, sum)
		}
	}
}

func TestFitLabelsAndNaN(t *testing.T) {
	tbl := buildTable(t,
		[]string{"ID", "Score", "Target"},
		[][]dataset.Value{
			{dataset.String("a"), dataset.Number(1), dataset.Number(1)},
			{dataset.String("b"), dataset.Number(2), dataset.Missing},
			{dataset.String("c"), dataset.Number(3), dataset.String("maybe")},
		},
	)

	_, y, _, err := NewCodec().Fit(tbl, "Target", "ID")
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if y[0] != 1 {
		t.Errorf("y[0] = %v, want 1", y[0])
	}
	if !math.IsNaN(y[1]) || !math.IsNaN(y[2]) {
		t.Errorf("y[1], y[2] = %v, %v, want NaN for missing and non-numeric", y[1], y[2])
	}
}

func TestFitDeterministic(t *testing.T) {
	tbl := salaryTable(t)

	x1, _, fitted1, err := NewCodec().Fit(tbl, "Attrition", "Employee_ID")
	if err != nil {
		t.Fatalf("first Fit() error = %v", err)
	}
	x2, _, fitted2, err := NewCodec().Fit(tbl, "Attrition", "Employee_ID")
	if err != nil {
		t.Fatalf("second Fit() error = %v", err)
	}

	if !reflect.DeepEqual(fitted1, fitted2) {
		t.Error("Fit() produced different fitted codecs on identical input")
	}
	if !reflect.DeepEqual(x1, x2) {
		t.Error("Fit() produced different matrices on identical input")
	}
}

func TestTransformImputation(t *testing.T) {
	// Fit on clean values, transform records with gaps.
	fitTbl := buildTable(t,
		[]string{"ID", "Salary", "Dept", "Y"},
		rowsOf(
			[]any{"a", 1000.0, "IT", 0.0},
			[]any{"b", 2000.0, "IT", 0.0},
			[]any{"c", 3000.0, "Sales", 1.0},
			[]any{"d", 4000.0, "Sales", 1.0},
			[]any{"e", 5000.0, "Sales", 0.0},
			[]any{"f", 6000.0, "HR", 0.0},
			[]any{"g", 7000.0, "HR", 1.0},
			[]any{"h", 8000.0, "IT", 0.0},
			[]any{"i", 9000.0, "IT", 1.0},
			[]any{"j", 10000.0, "IT", 0.0},
		),
	)
	codec := NewCodec()
	_, _, fitted, err := codec.Fit(fitTbl, "Y", "ID")
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// Median 5500, mean 5500, population std over the 10 values.
	salary := fitted.Numeric[0]
	if salary.Median != 5500 {
		t.Errorf("Median = %v, want 5500", salary.Median)
	}
	if salary.Mean != 5500 {
		t.Errorf("Mean = %v, want 5500", salary.Mean)
	}

	newTbl := buildTable(t,
		[]string{"ID", "Salary", "Dept", "Y"},
		rowsOf(
			[]any{"x", nil, "Sales", 0.0},      // missing salary -> median
			[]any{"y", 5500.0, nil, 0.0},       // missing dept -> mode
			[]any{"z", 5500.0, "Finance", 0.0}, // unknown dept -> all zeros
		),
	)
	x, err := codec.Transform(newTbl, fitted)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	// Median equals the mean here, so imputed salary standardizes to 0.
	if x[0][0] != 0 {
		t.Errorf("imputed salary feature = %v, want 0", x[0][0])
	}

	// Vocabulary sorted: HR, IT, Sales. Mode is IT (most frequent).
	deptBlock := func(row []float64) []float64 { return row[1:4] }
	if !reflect.DeepEqual(deptBlock(x[1]), []float64{0, 1, 0}) {
		t.Errorf("missing dept block = %v, want mode IT one-hot", deptBlock(x[1]))
	}
	if !reflect.DeepEqual(deptBlock(x[2]), []float64{0, 0, 0}) {
		t.Errorf("unknown dept block = %v, want all zeros", deptBlock(x[2]))
	}
}

func TestTransformMissingFeatureColumn(t *testing.T) {
	tbl := salaryTable(t)
	codec := NewCodec()
	_, _, fitted, err := codec.Fit(tbl, "Attrition", "Employee_ID")
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	short := buildTable(t,
		[]string{"Employee_ID", "Department"},
		[][]dataset.Value{{dataset.String("a"), dataset.String("IT")}},
	)
	_, err = codec.Transform(short, fitted)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Column != "Monthly_Salary" {
		t.Fatalf("Transform() error = %v, want SchemaError for Monthly_Salary", err)
	}
}

func TestConstantColumnIsCategorical(t *testing.T) {
	// A single distinct value falls under the arity threshold, so a
	// constant numeric column encodes as a one-slot indicator rather
	// than a standardized number.
	tbl := buildTable(t,
		[]string{"ID", "Const", "Y"},
		rowsOf(
			[]any{"a", 7.0, 0.0}, []any{"b", 7.0, 1.0}, []any{"c", 7.0, 0.0},
		),
	)
	codec := NewCodec()
	x, _, fitted, err := codec.Fit(tbl, "Y", "ID")
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	// Arity 1 < 10: the constant column is categorical with a single
	// vocabulary slot, so every row sets that indicator.
	if len(fitted.Categorical) != 1 || len(fitted.Categorical[0].Vocabulary) != 1 {
		t.Fatalf("fitted = %+v, want one single-slot categorical", fitted)
	}
	for i, row := range x {
		if row[0] != 1 {
			t.Errorf("row %d = %v, want [1]", i, row)
		}
	}
}

func TestTenureDerivation(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	codec := &Codec{Clock: func() time.Time { return now }}

	tbl := buildTable(t,
		[]string{"ID", "Hire_Date", "Salary", "Y"},
		rowsOf(
			[]any{"a", "2021-03-01", 1000.0, 0.0},
			[]any{"b", "2024-03-01", 2000.0, 1.0},
			[]any{"c", "not a date", 3000.0, 0.0},
			[]any{"d", "2026-02-28", 4000.0, 1.0},
			[]any{"e", "2016-03-01", 5000.0, 0.0},
			[]any{"f", "2020-03-01", 6000.0, 1.0},
			[]any{"g", "2019-03-01", 7000.0, 0.0},
			[]any{"h", "2018-03-01", 8000.0, 1.0},
			[]any{"i", "2017-03-01", 9000.0, 0.0},
			[]any{"j", "2015-03-01", 10000.0, 1.0},
			[]any{"k", "2014-03-01", 11000.0, 0.0},
			[]any{"l", "2013-03-01", 12000.0, 1.0},
		),
	)

	_, _, fitted, err := codec.Fit(tbl, "Y", "ID")
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !fitted.DerivedTenure {
		t.Fatal("DerivedTenure = false, want true")
	}

	// The raw hire-date column is dropped; tenure appears as a numeric
	// feature named Years_At_Company.
	foundTenure := false
	for _, ns := range fitted.Numeric {
		if ns.Name == TenureColumn {
			foundTenure = true
		}
		if ns.Name == HireDateColumn {
			t.Error("raw hire-date column survived as a feature")
		}
	}
	if !foundTenure {
		t.Fatalf("tenure feature missing: %+v", fitted.Numeric)
	}
}

func TestDeriveTenureRounding(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	vals := deriveTenure([]dataset.Value{
		dataset.String("2021-03-01"), // ~5 years
		dataset.String("bogus"),
		dataset.Number(3), // numeric cell, not a date
	}, now)

	if n, ok := vals[0].Number(); !ok || n != 5.0 {
		t.Errorf("tenure = %v, want 5.0", vals[0])
	}
	if !vals[1].IsMissing() || !vals[2].IsMissing() {
		t.Errorf("unparseable dates = %v, %v, want missing", vals[1], vals[2])
	}
}

func TestModeTieBreaksLexicographically(t *testing.T) {
	col := column{
		name: "Dept",
		values: []dataset.Value{
			dataset.String("Sales"), dataset.String("IT"),
			dataset.String("Sales"), dataset.String("IT"),
		},
	}
	cs := fitCategorical(col)
	if cs.Mode != "IT" {
		t.Errorf("Mode = %q, want IT (lexicographic tie-break)", cs.Mode)
	}
	if !reflect.DeepEqual(cs.Vocabulary, []string{"IT", "Sales"}) {
		t.Errorf("Vocabulary = %v, want sorted [IT Sales]", cs.Vocabulary)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Monthly_Salary", "Monthly Salary"},
		{"Department=IT", "Department = IT"},
		{"Job_Title=data_scientist", "Job Title = Data Scientist"},
		{"Overtime_Hours", "Overtime Hours"},
		{"Department=über_team", "Department = Über Team"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// rowsOf converts rows of go literals to dataset values for table
// construction. nil becomes Missing.
func rowsOf(rows ...[]any) [][]dataset.Value {
	out := make([][]dataset.Value, len(rows))
	for i, raw := range rows {
		row := make([]dataset.Value, len(raw))
		for j, cell := range raw {
			switch c := cell.(type) {
			case nil:
				row[j] = dataset.Missing
			case float64:
				row[j] = dataset.Number(c)
			case string:
				row[j] = dataset.String(c)
			}
		}
		out[i] = row
	}
	return out
}
