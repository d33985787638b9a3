// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package algorithms

import "math"

// LogisticRegressionConfig contains configuration for logistic regression.
type LogisticRegressionConfig struct {
	// C is the inverse regularization strength. Smaller values mean
	// stronger L2 regularization. Default: 1.0.
	C float64

	// MaxIterations bounds the gradient descent loop. Default: 1000.
	MaxIterations int

	// LearningRate is the gradient descent step size. The codec emits
	// standardized features, so a fixed step converges well. Default: 0.5.
	LearningRate float64

	// Tolerance stops iteration once the largest gradient component
	// falls below it. Default: 1e-6.
	Tolerance float64
}

// DefaultLogisticRegressionConfig returns the fixed design defaults.
func DefaultLogisticRegressionConfig() LogisticRegressionConfig {
	return LogisticRegressionConfig{
		C:             1.0,
		MaxIterations: 1000,
		LearningRate:  0.5,
		Tolerance:     1e-6,
	}
}

// LogisticRegression implements L2-regularized logistic regression fit by
// batch gradient descent. The bias term is not regularized.
type LogisticRegression struct {
	config LogisticRegressionConfig

	weights []float64
	bias    float64
	fitted  bool
}

// NewLogisticRegression creates a logistic regression with the given
// configuration. Zero-valued fields fall back to the design defaults.
func NewLogisticRegression(cfg LogisticRegressionConfig) *LogisticRegression {
	def := DefaultLogisticRegressionConfig()
	if cfg.C <= 0 {
		cfg.C = def.C
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = def.Tolerance
	}
	return &LogisticRegression{config: cfg}
}

// Name returns the algorithm identifier.
func (l *LogisticRegression) Name() string {
	return "logistic_regression"
}

// Fit trains the model. The objective is the mean logistic loss plus
// ||w||^2 / (2 * C * n), matching the scikit-learn parameterization the
// design defaults come from.
func (l *LogisticRegression) Fit(x [][]float64, y []float64) error {
	dim, err := checkFitInput(x, y)
	if err != nil {
		return err
	}

	n := float64(len(x))
	lambda := 1 / (l.config.C * n)

	weights := make([]float64, dim)
	bias := 0.0
	grad := make([]float64, dim)

	for iter := 0; iter < l.config.MaxIterations; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0

		for i, row := range x {
			z := bias
			for j, v := range row {
				z += weights[j] * v
			}
			diff := sigmoid(z) - y[i]
			for j, v := range row {
				grad[j] += diff * v
			}
			gradBias += diff
		}

		maxGrad := math.Abs(gradBias / n)
		for j := range grad {
			grad[j] = grad[j]/n + lambda*weights[j]
			if a := math.Abs(grad[j]); a > maxGrad {
				maxGrad = a
			}
		}
		gradBias /= n

		if maxGrad < l.config.Tolerance {
			break
		}

		for j := range weights {
			weights[j] -= l.config.LearningRate * grad[j]
		}
		bias -= l.config.LearningRate * gradBias
	}

	l.weights = weights
	l.bias = bias
	l.fitted = true
	return nil
}

// PredictProba returns sigmoid(w.x + b) per row.
func (l *LogisticRegression) PredictProba(x [][]float64) ([]float64, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}
	if err := checkPredictInput(x, len(l.weights)); err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, row := range x {
		z := l.bias
		for j, v := range row {
			z += l.weights[j] * v
		}
		out[i] = sigmoid(z)
	}
	return out, nil
}

// FeatureImportance returns the absolute value of each learned
// coefficient. The bias is excluded.
func (l *LogisticRegression) FeatureImportance() []float64 {
	if !l.fitted {
		return nil
	}
	out := make([]float64, len(l.weights))
	for i, w := range l.weights {
		out[i] = math.Abs(w)
	}
	return out
}
