// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package model

import (
	"fmt"
	"sort"

	"github.com/tomtom215/praedictus/internal/model/algorithms"
)

// FeatureImportance pairs a feature name with its importance score.
type FeatureImportance struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"score"`
}

// Importance exposes per-feature importance uniformly across algorithms:
// tree ensembles report normalized impurity decrease, logistic regression
// the absolute coefficients. Results are sorted descending by score; ties
// break by the codec's feature ordering.
func Importance(clf algorithms.Classifier, featureNames []string) ([]FeatureImportance, error) {
	scores := clf.FeatureImportance()
	if scores == nil {
		return nil, algorithms.ErrNotFitted
	}
	if len(scores) != len(featureNames) {
		return nil, fmt.Errorf("model: %d importance scores for %d feature names", len(scores), len(featureNames))
	}

	out := make([]FeatureImportance, len(scores))
	for i, s := range scores {
		out[i] = FeatureImportance{Feature: featureNames[i], Score: s}
	}
	// Stable sort preserves codec feature order among equal scores.
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out, nil
}
