// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package scoring applies a fitted codec and classifier to new records,
// producing resignation probabilities, discretized risk tiers, and
// per-record feature attributions.
//
// # Risk Tiers
//
// Tier thresholds are fixed so report language stays consistent across
// deployments: probability >= 0.6 is High, >= 0.3 is Medium, below that is
// Low. The boundary values belong to the higher tier.
//
// # Attribution
//
// Attribute produces a directional importance approximation, not an exact
// cooperative-game (Shapley) decomposition: each feature's signed
// contribution is the model's global importance for that feature times the
// sign of the record's standardized value. Every surface exposing these
// numbers must label them as an approximation.
package scoring
