// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package model

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/praedictus/internal/model/algorithms"
)

// decisionThreshold converts a probability to a hard label.
const decisionThreshold = 0.5

// ConfusionMatrix holds the four cells of the binary confusion matrix.
// It serializes as the 2x2 matrix [[tn, fp], [fn, tp]].
type ConfusionMatrix struct {
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
	TruePositives  int
}

// Total returns the number of evaluated rows.
func (m ConfusionMatrix) Total() int {
	return m.TrueNegatives + m.FalsePositives + m.FalseNegatives + m.TruePositives
}

// MarshalJSON encodes the matrix as [[tn, fp], [fn, tp]].
func (m ConfusionMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal([2][2]int{
		{m.TrueNegatives, m.FalsePositives},
		{m.FalseNegatives, m.TruePositives},
	})
}

// UnmarshalJSON decodes the [[tn, fp], [fn, tp]] form.
func (m *ConfusionMatrix) UnmarshalJSON(data []byte) error {
	var cells [2][2]int
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	m.TrueNegatives = cells[0][0]
	m.FalsePositives = cells[0][1]
	m.FalseNegatives = cells[1][0]
	m.TruePositives = cells[1][1]
	return nil
}

// Metrics holds the standard classification metrics for one evaluation.
// Precision, recall, and F1 use the positive class (resigned = 1); a
// zero-division case yields 0 rather than an error.
type Metrics struct {
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	AUC       float64         `json:"auc"`
	Confusion ConfusionMatrix `json:"confusion_matrix"`
}

// Evaluate computes metrics for a fitted classifier on a held-out split.
// A single-class test set is accepted: the affected ratio metrics (and
// AUC) come out as 0 via the zero-division convention rather than an
// error.
func Evaluate(clf algorithms.Classifier, xTest [][]float64, yTest []float64) (Metrics, error) {
	if len(xTest) != len(yTest) {
		return Metrics{}, fmt.Errorf("model: %d test rows but %d labels", len(xTest), len(yTest))
	}
	if len(xTest) == 0 {
		return Metrics{}, fmt.Errorf("model: empty test set")
	}
	if _, _, err := checkLabelValues(yTest); err != nil {
		return Metrics{}, err
	}

	probs, err := clf.PredictProba(xTest)
	if err != nil {
		return Metrics{}, fmt.Errorf("model: predict: %w", err)
	}

	var cm ConfusionMatrix
	for i, p := range probs {
		predicted := p >= decisionThreshold
		actual := yTest[i] == 1
		switch {
		case predicted && actual:
			cm.TruePositives++
		case predicted && !actual:
			cm.FalsePositives++
		case !predicted && actual:
			cm.FalseNegatives++
		default:
			cm.TrueNegatives++
		}
	}

	n := float64(cm.Total())
	precision := safeRatio(float64(cm.TruePositives), float64(cm.TruePositives+cm.FalsePositives))
	recall := safeRatio(float64(cm.TruePositives), float64(cm.TruePositives+cm.FalseNegatives))

	return Metrics{
		Accuracy:  float64(cm.TruePositives+cm.TrueNegatives) / n,
		Precision: precision,
		Recall:    recall,
		F1:        safeRatio(2*precision*recall, precision+recall),
		AUC:       rankAUC(probs, yTest),
		Confusion: cm,
	}, nil
}

// safeRatio returns num/den, or 0 on a zero denominator.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// rankAUC computes the area under the ROC curve via the Mann-Whitney
// U statistic with average ranks for tied scores. Returns 0 when either
// class is absent, consistent with the zero-division convention.
func rankAUC(probs, labels []float64) float64 {
	n := len(probs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return probs[idx[a]] < probs[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && probs[idx[j]] == probs[idx[i]] {
			j++
		}
		// Average rank over the tie group; ranks are 1-based.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}

	var posRankSum float64
	var pos, neg int
	for i, label := range labels {
		if label == 1 {
			posRankSum += ranks[i]
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0
	}

	u := posRankSum - float64(pos)*float64(pos+1)/2
	return u / (float64(pos) * float64(neg))
}
