// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package model

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/tomtom215/praedictus/internal/model/algorithms"
)

// Algorithm identifies a supported classifier kind.
type Algorithm string

const (
	// GradientBoostedTrees is gradient tree boosting on the logistic loss.
	GradientBoostedTrees Algorithm = "gradient_boosted_trees"

	// RandomForest is a bootstrap-aggregated tree ensemble.
	RandomForest Algorithm = "random_forest"

	// LogisticRegression is L2-regularized logistic regression.
	LogisticRegression Algorithm = "logistic_regression"
)

// Algorithms returns the supported algorithms in a fixed order.
func Algorithms() []Algorithm {
	return []Algorithm{GradientBoostedTrees, RandomForest, LogisticRegression}
}

// algorithmAliases maps caller-facing spellings to canonical names.
// "xgboost" survives from the product UI's historical model picker.
var algorithmAliases = map[string]Algorithm{
	"gradient_boosted_trees": GradientBoostedTrees,
	"gradient_boosting":      GradientBoostedTrees,
	"xgboost":                GradientBoostedTrees,
	"random_forest":          RandomForest,
	"logistic_regression":    LogisticRegression,
	"logistic":               LogisticRegression,
}

// ParseAlgorithm resolves a caller-supplied algorithm name.
// Returns an UnsupportedAlgorithmError for anything unknown.
func ParseAlgorithm(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if alg, ok := algorithmAliases[key]; ok {
		return alg, nil
	}
	return "", &UnsupportedAlgorithmError{Algorithm: name}
}

// TrainOptions carries caller overrides for training.
type TrainOptions struct {
	// Seed drives every stochastic training step. If zero, the fixed
	// default seed 42 is used.
	Seed int64
}

// Train fits a classifier of the given kind on the feature matrix.
// Labels must be strictly binary (every value 0 or 1, both classes
// present); violations fail with InvalidTargetError before any classifier
// sees the data.
func Train(x [][]float64, y []float64, alg Algorithm, opts TrainOptions) (algorithms.Classifier, error) {
	if err := checkBinary(y); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}

	var clf algorithms.Classifier
	switch alg {
	case GradientBoostedTrees:
		cfg := algorithms.DefaultGradientBoostingConfig()
		cfg.Seed = seed
		clf = algorithms.NewGradientBoosting(cfg)
	case RandomForest:
		cfg := algorithms.DefaultRandomForestConfig()
		cfg.Seed = seed
		clf = algorithms.NewRandomForest(cfg)
	case LogisticRegression:
		clf = algorithms.NewLogisticRegression(algorithms.DefaultLogisticRegressionConfig())
	default:
		return nil, &UnsupportedAlgorithmError{Algorithm: string(alg)}
	}

	if err := clf.Fit(x, y); err != nil {
		return nil, fmt.Errorf("model: fit %s: %w", alg, err)
	}
	return clf, nil
}

// Split partitions (x, y) into stratified train and test sets so both
// partitions preserve the class ratio. Deterministic given the seed.
func Split(x [][]float64, y []float64, testFraction float64, seed int64) (xTrain, xTest [][]float64, yTrain, yTest []float64, err error) {
	if len(x) != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("model: %d rows but %d labels", len(x), len(y))
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("model: test fraction %v outside (0, 1)", testFraction)
	}
	if err := checkBinary(y); err != nil {
		return nil, nil, nil, nil, err
	}

	//nolint:gosec // G404: math/rand is acceptable for data splitting (not security)
	rng := rand.New(rand.NewSource(seed))

	var trainIdx, testIdx []int
	for _, class := range []float64{0, 1} {
		var idx []int
		for i, label := range y {
			if label == class {
				idx = append(idx, i)
			}
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(testFraction * float64(len(idx))))
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(idx) {
			nTest = len(idx) - 1
		}
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}

	// Shuffle the combined partitions so rows are not grouped by class.
	rng.Shuffle(len(trainIdx), func(i, j int) { trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i] })
	rng.Shuffle(len(testIdx), func(i, j int) { testIdx[i], testIdx[j] = testIdx[j], testIdx[i] })

	xTrain, yTrain = gather(x, y, trainIdx)
	xTest, yTest = gather(x, y, testIdx)
	return xTrain, xTest, yTrain, yTest, nil
}

func gather(x [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	gx := make([][]float64, len(idx))
	gy := make([]float64, len(idx))
	for i, src := range idx {
		gx[i] = x[src]
		gy[i] = y[src]
	}
	return gx, gy
}

// checkBinary validates that every label is 0 or 1 and both classes occur.
func checkBinary(y []float64) error {
	zeros, ones, err := checkLabelValues(y)
	if err != nil {
		return err
	}
	if zeros == 0 || ones == 0 {
		return &InvalidTargetError{Reason: fmt.Sprintf("target has 1 class (%d zeros, %d ones), expected 2", zeros, ones)}
	}
	return nil
}

// checkLabelValues validates that every label is exactly 0 or 1, without
// requiring both classes. Evaluation accepts single-class held-out sets;
// the ratio metrics degrade to 0 there instead of failing.
func checkLabelValues(y []float64) (zeros, ones int, err error) {
	if len(y) == 0 {
		return 0, 0, &InvalidTargetError{Reason: "no labels"}
	}
	for i, label := range y {
		switch {
		case math.IsNaN(label):
			return 0, 0, &InvalidTargetError{Reason: fmt.Sprintf("missing or non-numeric label at row %d", i)}
		case label == 0:
			zeros++
		case label == 1:
			ones++
		default:
			return 0, 0, &InvalidTargetError{Reason: fmt.Sprintf("label %v at row %d is not binary (expected 0 or 1)", label, i)}
		}
	}
	return zeros, ones, nil
}
