// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package algorithms

import (
	"math"
	"math/rand"
)

// RandomForestConfig contains configuration for the random forest.
type RandomForestConfig struct {
	// NumTrees is the ensemble size. Default: 100.
	NumTrees int

	// MaxDepth bounds tree depth. Default: 5.
	MaxDepth int

	// MinSamplesSplit is the minimum sample count to consider a split.
	// Default: 10.
	MinSamplesSplit int

	// MinSamplesLeaf is the minimum sample count in a leaf. Default: 4.
	MinSamplesLeaf int

	// MaxFeatures is the size of the per-tree random feature subset.
	// If <= 0, defaults to sqrt(D) rounded up.
	MaxFeatures int

	// Seed drives bootstrap and feature sampling. Default: 42.
	Seed int64
}

// DefaultRandomForestConfig returns the fixed design defaults.
func DefaultRandomForestConfig() RandomForestConfig {
	return RandomForestConfig{
		NumTrees:        100,
		MaxDepth:        5,
		MinSamplesSplit: 10,
		MinSamplesLeaf:  4,
		Seed:            42,
	}
}

// RandomForest implements bootstrap-aggregated regression trees over 0/1
// labels. Each tree trains on a bootstrap sample of the rows and a random
// subset of the features; the predicted probability is the mean of the
// per-tree leaf means.
type RandomForest struct {
	config RandomForestConfig

	trees      []*treeNode
	importance []float64
	dim        int
	fitted     bool
}

// NewRandomForest creates a random forest with the given configuration.
// Zero-valued fields fall back to the design defaults.
func NewRandomForest(cfg RandomForestConfig) *RandomForest {
	def := DefaultRandomForestConfig()
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = def.NumTrees
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.MinSamplesSplit <= 0 {
		cfg.MinSamplesSplit = def.MinSamplesSplit
	}
	if cfg.MinSamplesLeaf <= 0 {
		cfg.MinSamplesLeaf = def.MinSamplesLeaf
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	return &RandomForest{config: cfg}
}

// Name returns the algorithm identifier.
func (f *RandomForest) Name() string {
	return "random_forest"
}

// Fit trains the forest.
func (f *RandomForest) Fit(x [][]float64, y []float64) error {
	dim, err := checkFitInput(x, y)
	if err != nil {
		return err
	}

	maxFeatures := f.config.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Ceil(math.Sqrt(float64(dim))))
	}
	if maxFeatures > dim {
		maxFeatures = dim
	}

	//nolint:gosec // G404: math/rand is acceptable for ML sampling (not security)
	rng := rand.New(rand.NewSource(f.config.Seed))

	builder := &treeBuilder{
		x: x,
		y: y,
		params: treeParams{
			maxDepth:        f.config.MaxDepth,
			minSamplesSplit: f.config.MinSamplesSplit,
			minSamplesLeaf:  f.config.MinSamplesLeaf,
		},
		importance: make([]float64, dim),
	}

	n := len(x)
	trees := make([]*treeNode, 0, f.config.NumTrees)
	for t := 0; t < f.config.NumTrees; t++ {
		samples := make([]int, n)
		for i := range samples {
			samples[i] = rng.Intn(n)
		}
		features := sampleFeatures(rng, dim, maxFeatures)
		trees = append(trees, builder.build(samples, features, 0))
	}

	f.trees = trees
	f.importance = normalize(builder.importance)
	f.dim = dim
	f.fitted = true
	return nil
}

// PredictProba returns the mean leaf value across trees per row.
func (f *RandomForest) PredictProba(x [][]float64) ([]float64, error) {
	if !f.fitted {
		return nil, ErrNotFitted
	}
	if err := checkPredictInput(x, f.dim); err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, row := range x {
		sum := 0.0
		for _, tree := range f.trees {
			sum += tree.predict(row)
		}
		out[i] = clamp01(sum / float64(len(f.trees)))
	}
	return out, nil
}

// FeatureImportance returns the normalized accumulated impurity decrease
// per feature.
func (f *RandomForest) FeatureImportance() []float64 {
	if !f.fitted {
		return nil
	}
	return f.importance
}

// sampleFeatures draws k distinct feature indices in ascending order, so
// gain ties inside the tree builder break toward the lower feature index.
func sampleFeatures(rng *rand.Rand, dim, k int) []int {
	if k >= dim {
		features := make([]int, dim)
		for i := range features {
			features[i] = i
		}
		return features
	}
	perm := rng.Perm(dim)[:k]
	// Insertion sort: k is small (sqrt of the feature count).
	for i := 1; i < len(perm); i++ {
		for j := i; j > 0 && perm[j] < perm[j-1]; j-- {
			perm[j], perm[j-1] = perm[j-1], perm[j]
		}
	}
	return perm
}
