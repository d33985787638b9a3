// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package model

import (
	"math"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/praedictus/internal/model/algorithms"
)

// fixedClassifier returns pre-computed probabilities, keyed by each row's
// first feature value treated as an index.
type fixedClassifier struct {
	probs  []float64
	scores []float64
}

func (f *fixedClassifier) Name() string { return "fixed" }

func (f *fixedClassifier) Fit(_ [][]float64, _ []float64) error { return nil }

func (f *fixedClassifier) FeatureImportance() []float64 { return f.scores }

func (f *fixedClassifier) PredictProba(x [][]float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = f.probs[int(row[0])]
	}
	return out, nil
}

func indexRows(n int) [][]float64 {
	x := make([][]float64, n)
	for i := range x {
		x[i] = []float64{float64(i)}
	}
	return x
}

func TestEvaluateConfusionAndRates(t *testing.T) {
	// probs >= 0.5 predict positive: rows 0-1 predicted positive,
	// rows 2-5 predicted negative.
	clf := &fixedClassifier{probs: []float64{0.9, 0.7, 0.4, 0.2, 0.45, 0.1}}
	y := []float64{1, 0, 1, 0, 0, 0}

	m, err := Evaluate(clf, indexRows(6), y)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	want := ConfusionMatrix{TruePositives: 1, FalsePositives: 1, FalseNegatives: 1, TrueNegatives: 3}
	if m.Confusion != want {
		t.Fatalf("confusion = %+v, want %+v", m.Confusion, want)
	}
	if m.Confusion.Total() != 6 {
		t.Errorf("Total() = %d, want 6", m.Confusion.Total())
	}

	const tol = 1e-12
	if math.Abs(m.Accuracy-4.0/6) > tol {
		t.Errorf("accuracy = %v, want %v", m.Accuracy, 4.0/6)
	}
	if math.Abs(m.Precision-0.5) > tol {
		t.Errorf("precision = %v, want 0.5", m.Precision)
	}
	if math.Abs(m.Recall-0.5) > tol {
		t.Errorf("recall = %v, want 0.5", m.Recall)
	}
	if math.Abs(m.F1-0.5) > tol {
		t.Errorf("f1 = %v, want 0.5", m.F1)
	}
}

func TestEvaluateZeroDivisionYieldsZero(t *testing.T) {
	// No predicted positives and no way to recall any: precision, recall,
	// and F1 all hit a zero denominator.
	clf := &fixedClassifier{probs: []float64{0.1, 0.2, 0.3, 0.4}}
	y := []float64{1, 0, 1, 0}

	m, err := Evaluate(clf, indexRows(4), y)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("precision/recall/f1 = %v/%v/%v, want 0/0/0", m.Precision, m.Recall, m.F1)
	}
}

func TestEvaluateSingleClassTestSet(t *testing.T) {
	// An all-negative held-out split is legal: the ratio metrics and AUC
	// degrade to 0 instead of failing.
	clf := &fixedClassifier{probs: []float64{0.1, 0.2, 0.3}}
	y := []float64{0, 0, 0}

	m, err := Evaluate(clf, indexRows(3), y)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if m.Accuracy != 1 {
		t.Errorf("accuracy = %v, want 1", m.Accuracy)
	}
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 || m.AUC != 0 {
		t.Errorf("precision/recall/f1/auc = %v/%v/%v/%v, want all 0",
			m.Precision, m.Recall, m.F1, m.AUC)
	}
	if m.Confusion.TrueNegatives != 3 || m.Confusion.Total() != 3 {
		t.Errorf("confusion = %+v, want 3 true negatives", m.Confusion)
	}

	// Non-binary and NaN labels are still rejected.
	if _, err := Evaluate(clf, indexRows(3), []float64{0, 2, 0}); err == nil {
		t.Error("Evaluate accepted a non-binary label")
	}
	if _, err := Evaluate(clf, indexRows(3), []float64{0, math.NaN(), 0}); err == nil {
		t.Error("Evaluate accepted a NaN label")
	}
}

func TestRankAUC(t *testing.T) {
	tests := []struct {
		name   string
		probs  []float64
		labels []float64
		want   float64
	}{
		{
			name:   "perfect ranking",
			probs:  []float64{0.1, 0.2, 0.8, 0.9},
			labels: []float64{0, 0, 1, 1},
			want:   1,
		},
		{
			name:   "inverted ranking",
			probs:  []float64{0.9, 0.8, 0.2, 0.1},
			labels: []float64{0, 0, 1, 1},
			want:   0,
		},
		{
			name:   "all scores tied",
			probs:  []float64{0.5, 0.5, 0.5, 0.5},
			labels: []float64{0, 1, 0, 1},
			want:   0.5,
		},
		{
			name:   "single class",
			probs:  []float64{0.2, 0.8},
			labels: []float64{1, 1},
			want:   0,
		},
		{
			name:   "partial tie group",
			probs:  []float64{0.3, 0.5, 0.5, 0.9},
			labels: []float64{0, 0, 1, 1},
			want:   0.875,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rankAUC(tt.probs, tt.labels); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("rankAUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrixJSON(t *testing.T) {
	m := ConfusionMatrix{TrueNegatives: 10, FalsePositives: 2, FalseNegatives: 3, TruePositives: 5}

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(raw), "[[10,2],[3,5]]"; got != want {
		t.Fatalf("Marshal() = %s, want %s", got, want)
	}

	var restored ConfusionMatrix
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if restored != m {
		t.Errorf("round trip = %+v, want %+v", restored, m)
	}
}

func TestImportanceSortedWithStableTies(t *testing.T) {
	clf := &fixedClassifier{scores: []float64{0.2, 0.5, 0.2, 0.1}}
	names := []string{"tenure", "salary", "overtime", "distance"}

	got, err := Importance(clf, names)
	if err != nil {
		t.Fatalf("Importance() error = %v", err)
	}
	want := []FeatureImportance{
		{Feature: "salary", Score: 0.5},
		{Feature: "tenure", Score: 0.2},
		{Feature: "overtime", Score: 0.2},
		{Feature: "distance", Score: 0.1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Importance() = %v, want %v", got, want)
	}
}

func TestImportanceErrors(t *testing.T) {
	if _, err := Importance(&fixedClassifier{}, []string{"a"}); err != algorithms.ErrNotFitted {
		t.Errorf("nil scores error = %v, want ErrNotFitted", err)
	}
	clf := &fixedClassifier{scores: []float64{0.5, 0.5}}
	if _, err := Importance(clf, []string{"a"}); err == nil {
		t.Error("length mismatch did not fail")
	}
}
