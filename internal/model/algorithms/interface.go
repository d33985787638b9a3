// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package algorithms

import (
	"errors"
	"fmt"
	"math"
)

// Classifier is the capability set shared by all supported algorithms.
type Classifier interface {
	// Name returns the algorithm identifier.
	Name() string

	// Fit trains the classifier on a feature matrix and binary labels.
	// Labels must be exactly 0 or 1; the trainer validates this before
	// calling Fit.
	Fit(x [][]float64, y []float64) error

	// PredictProba returns the probability of the positive class, one
	// value in [0, 1] per row.
	PredictProba(x [][]float64) ([]float64, error)

	// FeatureImportance returns one non-negative score per feature
	// column, or nil if the classifier is not fitted.
	FeatureImportance() []float64
}

// ErrNotFitted is returned when prediction is attempted before Fit.
var ErrNotFitted = errors.New("algorithms: classifier is not fitted")

// checkFitInput validates the shape of training input shared by all
// algorithms.
func checkFitInput(x [][]float64, y []float64) (dim int, err error) {
	if len(x) == 0 {
		return 0, errors.New("algorithms: empty training set")
	}
	if len(x) != len(y) {
		return 0, fmt.Errorf("algorithms: %d rows but %d labels", len(x), len(y))
	}
	dim = len(x[0])
	for i, row := range x {
		if len(row) != dim {
			return 0, fmt.Errorf("algorithms: row %d has %d features, expected %d", i, len(row), dim)
		}
	}
	return dim, nil
}

// checkPredictInput validates rows against the fitted dimensionality.
func checkPredictInput(x [][]float64, dim int) error {
	for i, row := range x {
		if len(row) != dim {
			return fmt.Errorf("algorithms: row %d has %d features, model expects %d", i, len(row), dim)
		}
	}
	return nil
}

// sigmoid maps a log-odds value to a probability.
func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// clamp01 bounds a probability to [0, 1] against accumulated float error.
func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// normalize scales non-negative scores to sum to 1. All-zero input is
// returned unchanged.
func normalize(scores []float64) []float64 {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum == 0 {
		return scores
	}
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = s / sum
	}
	return out
}

// Ensure all algorithms implement the interface.
var (
	_ Classifier = (*GradientBoosting)(nil)
	_ Classifier = (*RandomForest)(nil)
	_ Classifier = (*LogisticRegression)(nil)
)
