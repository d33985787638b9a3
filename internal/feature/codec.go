// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package feature

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/praedictus/internal/dataset"
)

const (
	// categoricalArity is the distinct-value threshold below which a
	// numeric column is treated as categorical.
	categoricalArity = 10

	// TenureColumn is the derived years-at-company column name.
	TenureColumn = "Years_At_Company"

	// HireDateColumn is the source column for tenure derivation.
	HireDateColumn = "Hire_Date"

	daysPerYear = 365.25
)

// NumericStats holds the frozen imputation and scaling statistics for one
// continuous column.
type NumericStats struct {
	Name   string  `json:"name"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
}

// CategoricalStats holds the frozen imputation statistic and vocabulary for
// one categorical column. The vocabulary is sorted by canonical string form
// and fixed at fit time; values outside it encode as all zeros.
type CategoricalStats struct {
	Name       string   `json:"name"`
	Mode       string   `json:"mode"`
	Vocabulary []string `json:"vocabulary"`
}

// Fitted is the frozen codec produced by Fit. It is immutable after fit and
// safe for concurrent use by any number of Transform calls.
type Fitted struct {
	// Numeric lists continuous columns in original column order.
	Numeric []NumericStats `json:"numeric"`

	// Categorical lists categorical columns in original column order.
	Categorical []CategoricalStats `json:"categorical"`

	// FeatureNames is the ordered feature-name list of length Dim().
	FeatureNames []string `json:"feature_names"`

	// DerivedTenure records that the tenure column was computed from the
	// hire-date column at fit time, so Transform may derive it again.
	DerivedTenure bool `json:"derived_tenure"`
}

// Dim returns the feature dimensionality D.
func (f *Fitted) Dim() int {
	return len(f.FeatureNames)
}

// NumericFeature reports whether the feature at the given index is a
// continuous (standardized) feature rather than a one-hot indicator.
// Continuous features occupy the leading indices by construction.
func (f *Fitted) NumericFeature(i int) bool {
	return i < len(f.Numeric)
}

// Codec converts raw records into numeric feature vectors.
// The zero value is not usable; create one with NewCodec.
type Codec struct {
	// Clock supplies the current time for tenure derivation.
	// Injected for deterministic tests.
	Clock func() time.Time
}

// NewCodec creates a codec using the wall clock.
func NewCodec() *Codec {
	return &Codec{Clock: time.Now}
}

// Fit learns the frozen statistics from tbl, excluding the target and id
// columns, and returns the encoded feature matrix, the raw labels, and the
// fitted codec. Labels are returned as float64 with NaN marking missing or
// non-numeric label cells; binary validation happens at training time.
//
// Returns a SchemaError if the target or id column is absent.
func (c *Codec) Fit(tbl *dataset.Table, targetColumn, idColumn string) (x [][]float64, y []float64, fitted *Fitted, err error) {
	if !tbl.HasColumn(targetColumn) {
		return nil, nil, nil, missingColumn(targetColumn, "target")
	}
	if !tbl.HasColumn(idColumn) {
		return nil, nil, nil, missingColumn(idColumn, "id")
	}

	labels, _ := tbl.Column(targetColumn)
	y = make([]float64, len(labels))
	for i, v := range labels {
		if n, ok := v.Number(); ok {
			y[i] = n
		} else {
			y[i] = math.NaN()
		}
	}

	cols, derived := c.featureColumns(tbl, targetColumn, idColumn)

	fitted = &Fitted{DerivedTenure: derived}
	for _, col := range cols {
		if isCategorical(col) {
			fitted.Categorical = append(fitted.Categorical, fitCategorical(col))
		} else {
			fitted.Numeric = append(fitted.Numeric, fitNumeric(col))
		}
	}

	for _, ns := range fitted.Numeric {
		fitted.FeatureNames = append(fitted.FeatureNames, ns.Name)
	}
	for _, cs := range fitted.Categorical {
		for _, v := range cs.Vocabulary {
			fitted.FeatureNames = append(fitted.FeatureNames, OneHotName(cs.Name, v))
		}
	}

	x, err = c.Transform(tbl, fitted)
	if err != nil {
		return nil, nil, nil, err
	}
	return x, y, fitted, nil
}

// Transform encodes tbl using the frozen statistics in fitted. It is a pure
// function: identical input always yields bit-identical output.
//
// Returns a SchemaError if a column the codec expects is absent. Missing
// values within present columns are imputed, never errors.
func (c *Codec) Transform(tbl *dataset.Table, fitted *Fitted) ([][]float64, error) {
	n := tbl.NumRows()
	d := fitted.Dim()

	// Resolve each codec column to its values up front so column-presence
	// errors surface before any row is encoded.
	numericValues := make([][]dataset.Value, len(fitted.Numeric))
	for i, ns := range fitted.Numeric {
		vals, err := c.resolveColumn(tbl, ns.Name, fitted)
		if err != nil {
			return nil, err
		}
		numericValues[i] = vals
	}
	categoricalValues := make([][]dataset.Value, len(fitted.Categorical))
	for i, cs := range fitted.Categorical {
		vals, err := c.resolveColumn(tbl, cs.Name, fitted)
		if err != nil {
			return nil, err
		}
		categoricalValues[i] = vals
	}

	out := make([][]float64, n)
	for ri := 0; ri < n; ri++ {
		row := make([]float64, d)
		fi := 0

		for i, ns := range fitted.Numeric {
			v := numericValues[i][ri]
			raw, ok := v.Number()
			if !ok {
				raw = ns.Median
			}
			if ns.Std == 0 {
				// Zero-variance column: constant zero after centering.
				row[fi] = 0
			} else {
				row[fi] = (raw - ns.Mean) / ns.Std
			}
			fi++
		}

		for i, cs := range fitted.Categorical {
			v := categoricalValues[i][ri]
			key := cs.Mode
			if !v.IsMissing() {
				key = v.Canonical()
			}
			// Unknown values leave the whole block at zero.
			if j := sort.SearchStrings(cs.Vocabulary, key); j < len(cs.Vocabulary) && cs.Vocabulary[j] == key {
				row[fi+j] = 1
			}
			fi += len(cs.Vocabulary)
		}

		out[ri] = row
	}

	return out, nil
}

// resolveColumn returns the values for a codec column, deriving tenure from
// the hire date when the codec learned it that way.
func (c *Codec) resolveColumn(tbl *dataset.Table, name string, fitted *Fitted) ([]dataset.Value, error) {
	if vals, ok := tbl.Column(name); ok {
		return vals, nil
	}
	if name == TenureColumn && fitted.DerivedTenure {
		if hires, ok := tbl.Column(HireDateColumn); ok {
			return deriveTenure(hires, c.now()), nil
		}
	}
	return nil, missingColumn(name, "feature")
}

func (c *Codec) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// column is one materialized feature column at fit time.
type column struct {
	name   string
	values []dataset.Value
}

// featureColumns materializes the feature columns in original column order,
// excluding the target and id columns. When no tenure column exists but a
// hire-date column does, tenure is derived and appended, and the raw
// hire-date column is dropped (its canonical forms are near-unique, so its
// one-hot encoding would carry no reusable signal).
func (c *Codec) featureColumns(tbl *dataset.Table, targetColumn, idColumn string) ([]column, bool) {
	derive := !tbl.HasColumn(TenureColumn) && tbl.HasColumn(HireDateColumn)

	var cols []column
	for _, name := range tbl.Columns() {
		if name == targetColumn || name == idColumn {
			continue
		}
		if derive && name == HireDateColumn {
			continue
		}
		vals, _ := tbl.Column(name)
		cols = append(cols, column{name: name, values: vals})
	}

	if derive {
		hires, _ := tbl.Column(HireDateColumn)
		cols = append(cols, column{name: TenureColumn, values: deriveTenure(hires, c.now())})
	}

	return cols, derive
}

// isCategorical applies the type/arity rule: non-numeric cells, or fewer
// than categoricalArity distinct observed values.
func isCategorical(col column) bool {
	for _, v := range col.values {
		if v.IsMissing() {
			continue
		}
		if v.Kind() != dataset.KindNumber {
			return true
		}
	}
	distinct := make(map[string]struct{})
	for _, v := range col.values {
		if v.IsMissing() {
			continue
		}
		distinct[v.Canonical()] = struct{}{}
	}
	return len(distinct) < categoricalArity
}

// fitNumeric computes the frozen median, mean, and population standard
// deviation for one continuous column. The mean and std are computed over
// the median-imputed values, matching how the statistics are later applied.
func fitNumeric(col column) NumericStats {
	var observed []float64
	for _, v := range col.values {
		if n, ok := v.Number(); ok {
			observed = append(observed, n)
		}
	}

	median := 0.0
	if len(observed) > 0 {
		s := append([]float64(nil), observed...)
		sort.Float64s(s)
		mid := len(s) / 2
		if len(s)%2 == 1 {
			median = s[mid]
		} else {
			median = (s[mid-1] + s[mid]) / 2
		}
	}

	n := float64(len(col.values))
	mean := 0.0
	if n > 0 {
		sum := 0.0
		for _, v := range col.values {
			raw, ok := v.Number()
			if !ok {
				raw = median
			}
			sum += raw
		}
		mean = sum / n
	}

	variance := 0.0
	if n > 0 {
		for _, v := range col.values {
			raw, ok := v.Number()
			if !ok {
				raw = median
			}
			diff := raw - mean
			variance += diff * diff
		}
		variance /= n
	}

	return NumericStats{Name: col.name, Median: median, Mean: mean, Std: math.Sqrt(variance)}
}

// fitCategorical computes the mode and the sorted vocabulary for one
// categorical column. The mode breaks frequency ties toward the
// lexicographically smallest value for determinism.
func fitCategorical(col column) CategoricalStats {
	counts := make(map[string]int)
	for _, v := range col.values {
		if v.IsMissing() {
			continue
		}
		counts[v.Canonical()]++
	}

	mode := ""
	best := -1
	for _, key := range sortedKeys(counts) {
		if counts[key] > best {
			mode = key
			best = counts[key]
		}
	}

	vocab := sortedKeys(counts)
	if len(vocab) == 0 {
		// All-missing column: the vocabulary is the single imputed value.
		vocab = []string{mode}
	}

	return CategoricalStats{Name: col.name, Mode: mode, Vocabulary: vocab}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// deriveTenure computes years at company from hire-date cells. Cells that
// cannot be parsed as dates become Missing, subject to median imputation.
func deriveTenure(hires []dataset.Value, now time.Time) []dataset.Value {
	out := make([]dataset.Value, len(hires))
	for i, v := range hires {
		t, ok := parseDate(v)
		if !ok {
			out[i] = dataset.Missing
			continue
		}
		days := now.Sub(t).Hours() / 24
		years := math.Round(days/daysPerYear*10) / 10
		out[i] = dataset.Number(years)
	}
	return out
}

// dateLayouts lists accepted hire-date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

func parseDate(v dataset.Value) (time.Time, bool) {
	s, ok := v.Text()
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OneHotName builds the feature name for one vocabulary entry.
func OneHotName(columnName, value string) string {
	return columnName + "=" + value
}

// DisplayName formats a feature name for report surfaces: underscores
// become spaces, one-hot names render as "Column = Value", and words are
// title-cased.
func DisplayName(name string) string {
	format := func(s string) string {
		s = strings.ReplaceAll(s, "_", " ")
		words := strings.Fields(s)
		for i, w := range words {
			r, size := utf8.DecodeRuneInString(w)
			words[i] = strings.ToUpper(string(r)) + w[size:]
		}
		return strings.Join(words, " ")
	}

	if col, val, ok := strings.Cut(name, "="); ok {
		return format(col) + " = " + format(val)
	}
	return format(name)
}
