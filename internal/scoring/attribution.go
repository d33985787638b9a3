// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package scoring

import (
	"sort"

	"github.com/tomtom215/praedictus/internal/dataset"
	"github.com/tomtom215/praedictus/internal/feature"
	"github.com/tomtom215/praedictus/internal/model/algorithms"
)

// Contribution is one feature's signed contribution to a prediction.
// Positive values push the probability toward resignation, negative away.
type Contribution struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// Attribution is the ranked contribution list for one record.
type Attribution struct {
	RecordID      string         `json:"record_id"`
	Contributions []Contribution `json:"contributions"`
}

// DefaultTopFeatures is the contribution list length callers typically keep.
const DefaultTopFeatures = 5

// Attribute estimates per-feature, per-record contributions using the
// directional importance approximation:
//
//	contribution[j] = importance[j] * sign(z[j])
//
// where z[j] is the standardized feature value for continuous features
// (the encoded feature itself) and the 0/1 indicator for one-hot features.
// A record exactly at the column mean, or with an absent category,
// contributes zero for that feature.
//
// This is an explicit approximation of directional influence, not an exact
// additive (Shapley) decomposition; callers must present it as such.
func Attribute(codec *feature.Codec, fitted *feature.Fitted, clf algorithms.Classifier, tbl *dataset.Table, idColumn string, topN int) ([]Attribution, error) {
	ids, err := recordIDs(tbl, idColumn)
	if err != nil {
		return nil, err
	}
	if err := checkModelDim(fitted, clf); err != nil {
		return nil, err
	}

	x, err := codec.Transform(tbl, fitted)
	if err != nil {
		return nil, err
	}

	importance := clf.FeatureImportance()
	if topN <= 0 {
		topN = DefaultTopFeatures
	}

	out := make([]Attribution, len(x))
	for ri, row := range x {
		contribs := make([]Contribution, len(row))
		for j, z := range row {
			contribs[j] = Contribution{
				Feature: fitted.FeatureNames[j],
				Value:   importance[j] * sign(z),
			}
		}
		// Stable sort: ties keep the codec's feature ordering.
		sort.SliceStable(contribs, func(a, b int) bool {
			return abs(contribs[a].Value) > abs(contribs[b].Value)
		})
		if len(contribs) > topN {
			contribs = contribs[:topN]
		}
		out[ri] = Attribution{RecordID: ids[ri], Contributions: contribs}
	}
	return out, nil
}

func sign(z float64) float64 {
	switch {
	case z > 0:
		return 1
	case z < 0:
		return -1
	default:
		return 0
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
