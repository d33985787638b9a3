// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package algorithms

import "sort"

// treeNode is one node of a CART regression tree. Leaves have Feature -1.
// Fields are exported for JSON persistence of fitted models.
type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Value     float64   `json:"value"`
}

// predict walks the tree for one feature vector.
func (n *treeNode) predict(row []float64) float64 {
	node := n
	for node.Feature >= 0 {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// treeParams bounds tree growth.
type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
}

// treeBuilder grows a regression tree minimizing squared error. Both tree
// ensembles share it: the forest fits trees to 0/1 labels (for binary
// targets the variance criterion ranks splits identically to Gini), the
// booster fits trees to pseudo-residuals.
type treeBuilder struct {
	x      [][]float64
	y      []float64
	params treeParams

	// importance accumulates the impurity decrease credited to each
	// feature across every split of every tree built with this builder.
	importance []float64
}

// build grows a tree over the given sample indices, considering only the
// given candidate features. Candidate order is significant: gain ties
// resolve toward the earlier feature, keeping training deterministic.
func (b *treeBuilder) build(samples, features []int, depth int) *treeNode {
	leaf := &treeNode{Feature: -1, Value: mean(b.y, samples)}

	if depth >= b.params.maxDepth || len(samples) < b.params.minSamplesSplit {
		return leaf
	}

	feature, threshold, gain, ok := b.bestSplit(samples, features)
	if !ok || gain <= 0 {
		return leaf
	}

	var left, right []int
	for _, si := range samples {
		if b.x[si][feature] <= threshold {
			left = append(left, si)
		} else {
			right = append(right, si)
		}
	}
	if len(left) < b.params.minSamplesLeaf || len(right) < b.params.minSamplesLeaf {
		return leaf
	}

	b.importance[feature] += gain

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, features, depth+1),
		Right:     b.build(right, features, depth+1),
	}
}

// bestSplit finds the (feature, threshold) pair with the largest squared
// error reduction. For each candidate feature the samples are sorted once
// and every boundary between distinct consecutive values is evaluated with
// prefix sums.
func (b *treeBuilder) bestSplit(samples, features []int) (feature int, threshold, gain float64, ok bool) {
	n := len(samples)
	if n < 2 {
		return 0, 0, 0, false
	}

	var totalSum, totalSq float64
	for _, si := range samples {
		totalSum += b.y[si]
		totalSq += b.y[si] * b.y[si]
	}
	parentSSE := totalSq - totalSum*totalSum/float64(n)

	type pair struct{ v, t float64 }
	pairs := make([]pair, n)

	bestGain := 0.0
	found := false

	for _, fi := range features {
		for i, si := range samples {
			pairs[i] = pair{v: b.x[si][fi], t: b.y[si]}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].v < pairs[j].v })

		var leftSum, leftSq float64
		for i := 0; i < n-1; i++ {
			leftSum += pairs[i].t
			leftSq += pairs[i].t * pairs[i].t

			// Only split between distinct values.
			if pairs[i].v == pairs[i+1].v {
				continue
			}
			nl := i + 1
			nr := n - nl
			if nl < b.params.minSamplesLeaf || nr < b.params.minSamplesLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			leftSSE := leftSq - leftSum*leftSum/float64(nl)
			rightSSE := rightSq - rightSum*rightSum/float64(nr)

			g := parentSSE - leftSSE - rightSSE
			if g > bestGain {
				bestGain = g
				feature = fi
				threshold = (pairs[i].v + pairs[i+1].v) / 2
				found = true
			}
		}
	}

	return feature, threshold, bestGain, found
}

func mean(y []float64, samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, si := range samples {
		sum += y[si]
	}
	return sum / float64(len(samples))
}
