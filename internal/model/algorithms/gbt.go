// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package algorithms

import (
	"math"
	"math/rand"
)

// GradientBoostingConfig contains configuration for gradient-boosted trees.
type GradientBoostingConfig struct {
	// NumTrees is the number of boosting stages. Default: 100.
	NumTrees int

	// MaxDepth bounds each stage's tree depth. Default: 5.
	MaxDepth int

	// LearningRate shrinks each stage's contribution. Default: 0.1.
	LearningRate float64

	// Subsample is the row fraction drawn (without replacement) per
	// stage. Default: 0.8.
	Subsample float64

	// ColSample is the feature fraction drawn per stage. Default: 0.8.
	ColSample float64

	// MinSamplesLeaf is the minimum sample count in a leaf. Default: 1.
	MinSamplesLeaf int

	// Seed drives row and column subsampling. Default: 42.
	Seed int64
}

// DefaultGradientBoostingConfig returns the fixed design defaults.
func DefaultGradientBoostingConfig() GradientBoostingConfig {
	return GradientBoostingConfig{
		NumTrees:       100,
		MaxDepth:       5,
		LearningRate:   0.1,
		Subsample:      0.8,
		ColSample:      0.8,
		MinSamplesLeaf: 1,
		Seed:           42,
	}
}

// GradientBoosting implements gradient tree boosting on the logistic loss
// (Friedman, 2001). Each stage fits a regression tree to the current
// pseudo-residuals y - sigmoid(F) and the model accumulates
// F += learning_rate * tree(x); probability is sigmoid(F).
type GradientBoosting struct {
	config GradientBoostingConfig

	bias       float64
	trees      []*treeNode
	importance []float64
	dim        int
	fitted     bool
}

// NewGradientBoosting creates a booster with the given configuration.
// Zero-valued fields fall back to the design defaults.
func NewGradientBoosting(cfg GradientBoostingConfig) *GradientBoosting {
	def := DefaultGradientBoostingConfig()
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = def.NumTrees
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Subsample <= 0 || cfg.Subsample > 1 {
		cfg.Subsample = def.Subsample
	}
	if cfg.ColSample <= 0 || cfg.ColSample > 1 {
		cfg.ColSample = def.ColSample
	}
	if cfg.MinSamplesLeaf <= 0 {
		cfg.MinSamplesLeaf = def.MinSamplesLeaf
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	return &GradientBoosting{config: cfg}
}

// Name returns the algorithm identifier.
func (g *GradientBoosting) Name() string {
	return "gradient_boosted_trees"
}

// Fit trains the booster.
func (g *GradientBoosting) Fit(x [][]float64, y []float64) error {
	dim, err := checkFitInput(x, y)
	if err != nil {
		return err
	}

	n := len(x)

	// Initial score: log-odds of the positive rate, clamped away from the
	// degenerate single-class extremes.
	posRate := 0.0
	for _, label := range y {
		posRate += label
	}
	posRate /= float64(n)
	posRate = math.Min(math.Max(posRate, 1e-6), 1-1e-6)
	g.bias = math.Log(posRate / (1 - posRate))

	//nolint:gosec // G404: math/rand is acceptable for ML sampling (not security)
	rng := rand.New(rand.NewSource(g.config.Seed))

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = g.bias
	}

	residuals := make([]float64, n)
	builder := &treeBuilder{
		x: x,
		y: residuals,
		params: treeParams{
			maxDepth:        g.config.MaxDepth,
			minSamplesSplit: 2,
			minSamplesLeaf:  g.config.MinSamplesLeaf,
		},
		importance: make([]float64, dim),
	}

	rowSample := int(math.Round(g.config.Subsample * float64(n)))
	if rowSample < 1 {
		rowSample = 1
	}
	colSample := int(math.Round(g.config.ColSample * float64(dim)))
	if colSample < 1 {
		colSample = 1
	}

	trees := make([]*treeNode, 0, g.config.NumTrees)
	for t := 0; t < g.config.NumTrees; t++ {
		for i := range residuals {
			residuals[i] = y[i] - sigmoid(scores[i])
		}

		samples := rng.Perm(n)[:rowSample]
		features := sampleFeatures(rng, dim, colSample)

		tree := builder.build(samples, features, 0)
		trees = append(trees, tree)

		for i, row := range x {
			scores[i] += g.config.LearningRate * tree.predict(row)
		}
	}

	g.trees = trees
	g.importance = normalize(builder.importance)
	g.dim = dim
	g.fitted = true
	return nil
}

// PredictProba returns sigmoid of the accumulated stage scores per row.
func (g *GradientBoosting) PredictProba(x [][]float64) ([]float64, error) {
	if !g.fitted {
		return nil, ErrNotFitted
	}
	if err := checkPredictInput(x, g.dim); err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, row := range x {
		score := g.bias
		for _, tree := range g.trees {
			score += g.config.LearningRate * tree.predict(row)
		}
		out[i] = sigmoid(score)
	}
	return out, nil
}

// FeatureImportance returns the normalized accumulated impurity decrease
// per feature across all boosting stages.
func (g *GradientBoosting) FeatureImportance() []float64 {
	if !g.fitted {
		return nil
	}
	return g.importance
}
