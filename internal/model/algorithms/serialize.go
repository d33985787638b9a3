// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package algorithms

import (
	"fmt"

	"github.com/goccy/go-json"
)

// envelope wraps a serialized classifier with its algorithm identifier so
// Unmarshal can restore the right concrete type.
type envelope struct {
	Algorithm string          `json:"algorithm"`
	State     json.RawMessage `json:"state"`
}

type gradientBoostingState struct {
	Config     GradientBoostingConfig `json:"config"`
	Bias       float64                `json:"bias"`
	Trees      []*treeNode            `json:"trees"`
	Importance []float64              `json:"importance"`
	Dim        int                    `json:"dim"`
}

type randomForestState struct {
	Config     RandomForestConfig `json:"config"`
	Trees      []*treeNode        `json:"trees"`
	Importance []float64          `json:"importance"`
	Dim        int                `json:"dim"`
}

type logisticRegressionState struct {
	Config  LogisticRegressionConfig `json:"config"`
	Weights []float64                `json:"weights"`
	Bias    float64                  `json:"bias"`
}

// Marshal serializes a fitted classifier for persistence.
func Marshal(c Classifier) ([]byte, error) {
	var state any
	switch m := c.(type) {
	case *GradientBoosting:
		if !m.fitted {
			return nil, ErrNotFitted
		}
		state = gradientBoostingState{
			Config: m.config, Bias: m.bias, Trees: m.trees,
			Importance: m.importance, Dim: m.dim,
		}
	case *RandomForest:
		if !m.fitted {
			return nil, ErrNotFitted
		}
		state = randomForestState{
			Config: m.config, Trees: m.trees,
			Importance: m.importance, Dim: m.dim,
		}
	case *LogisticRegression:
		if !m.fitted {
			return nil, ErrNotFitted
		}
		state = logisticRegressionState{
			Config: m.config, Weights: m.weights, Bias: m.bias,
		}
	default:
		return nil, fmt.Errorf("algorithms: cannot serialize %T", c)
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("algorithms: marshal state: %w", err)
	}
	return json.Marshal(envelope{Algorithm: c.Name(), State: raw})
}

// Unmarshal restores a classifier serialized by Marshal.
func Unmarshal(data []byte) (Classifier, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("algorithms: unmarshal envelope: %w", err)
	}

	switch env.Algorithm {
	case "gradient_boosted_trees":
		var s gradientBoostingState
		if err := json.Unmarshal(env.State, &s); err != nil {
			return nil, fmt.Errorf("algorithms: unmarshal %s state: %w", env.Algorithm, err)
		}
		return &GradientBoosting{
			config: s.Config, bias: s.Bias, trees: s.Trees,
			importance: s.Importance, dim: s.Dim, fitted: true,
		}, nil
	case "random_forest":
		var s randomForestState
		if err := json.Unmarshal(env.State, &s); err != nil {
			return nil, fmt.Errorf("algorithms: unmarshal %s state: %w", env.Algorithm, err)
		}
		return &RandomForest{
			config: s.Config, trees: s.Trees,
			importance: s.Importance, dim: s.Dim, fitted: true,
		}, nil
	case "logistic_regression":
		var s logisticRegressionState
		if err := json.Unmarshal(env.State, &s); err != nil {
			return nil, fmt.Errorf("algorithms: unmarshal %s state: %w", env.Algorithm, err)
		}
		return &LogisticRegression{
			config: s.Config, weights: s.Weights, bias: s.Bias, fitted: true,
		}, nil
	default:
		return nil, fmt.Errorf("algorithms: unknown algorithm %q in serialized model", env.Algorithm)
	}
}
