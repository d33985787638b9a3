// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package algorithms implements the interchangeable binary classifiers
// behind the model trainer.
//
// Each algorithm implements the Classifier interface: Fit, PredictProba,
// FeatureImportance. Training, evaluation, and attribution code is
// polymorphic over this capability set and never special-cases an
// algorithm.
//
// # Algorithms
//
//   - GradientBoosting: gradient-boosted regression trees on the logistic
//     loss (Friedman, 2001)
//   - RandomForest: bootstrap-aggregated CART trees (Breiman, 2001)
//   - LogisticRegression: L2-regularized logistic regression fit by batch
//     gradient descent
//
// # Determinism
//
// All stochastic steps (bootstrap sampling, subsampling, weight
// initialization) draw from a seeded source, so a given (data, config,
// seed) triple always produces the same fitted model.
//
// # Thread Safety
//
// A classifier is mutable during Fit and immutable afterwards. Concurrent
// PredictProba and FeatureImportance calls on a fitted classifier are safe
// without locking; concurrent Fit calls are not.
package algorithms
