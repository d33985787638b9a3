// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package scoring

import (
	"fmt"

	"github.com/tomtom215/praedictus/internal/dataset"
	"github.com/tomtom215/praedictus/internal/feature"
	"github.com/tomtom215/praedictus/internal/model/algorithms"
)

// RiskTier discretizes a resignation probability.
type RiskTier string

const (
	// RiskLow covers probabilities below 0.3.
	RiskLow RiskTier = "Low"
	// RiskMedium covers probabilities in [0.3, 0.6).
	RiskMedium RiskTier = "Medium"
	// RiskHigh covers probabilities of 0.6 and above.
	RiskHigh RiskTier = "High"
)

// Tier thresholds. Fixed by design, not configurable.
const (
	highThreshold   = 0.6
	mediumThreshold = 0.3
)

// TierFor maps a probability to its risk tier. Boundary values belong to
// the higher tier.
func TierFor(probability float64) RiskTier {
	switch {
	case probability >= highThreshold:
		return RiskHigh
	case probability >= mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Prediction is the scored outcome for one record.
type Prediction struct {
	RecordID    string   `json:"record_id"`
	Probability float64  `json:"probability"`
	Tier        RiskTier `json:"risk_tier"`
}

// Score transforms the records with the fitted codec and applies the
// classifier, producing one Prediction per row.
//
// Returns a feature.SchemaError if the id column or any codec column is
// absent, or if the classifier's dimensionality disagrees with the codec.
func Score(codec *feature.Codec, fitted *feature.Fitted, clf algorithms.Classifier, tbl *dataset.Table, idColumn string) ([]Prediction, error) {
	ids, err := recordIDs(tbl, idColumn)
	if err != nil {
		return nil, err
	}

	x, err := codec.Transform(tbl, fitted)
	if err != nil {
		return nil, err
	}
	if err := checkModelDim(fitted, clf); err != nil {
		return nil, err
	}

	probs, err := clf.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("scoring: predict: %w", err)
	}

	out := make([]Prediction, len(probs))
	for i, p := range probs {
		out[i] = Prediction{
			RecordID:    ids[i],
			Probability: p,
			Tier:        TierFor(p),
		}
	}
	return out, nil
}

// recordIDs extracts the id column as canonical strings.
func recordIDs(tbl *dataset.Table, idColumn string) ([]string, error) {
	vals, ok := tbl.Column(idColumn)
	if !ok {
		return nil, &feature.SchemaError{Column: idColumn, Reason: "id column not found in dataset"}
	}
	ids := make([]string, len(vals))
	for i, v := range vals {
		ids[i] = v.Canonical()
	}
	return ids, nil
}

// checkModelDim verifies the classifier was trained in the codec's feature
// space.
func checkModelDim(fitted *feature.Fitted, clf algorithms.Classifier) error {
	imp := clf.FeatureImportance()
	if imp == nil {
		return algorithms.ErrNotFitted
	}
	if len(imp) != fitted.Dim() {
		return &feature.SchemaError{
			Reason: fmt.Sprintf("model expects %d features but codec produces %d", len(imp), fitted.Dim()),
		}
	}
	return nil
}
