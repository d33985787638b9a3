// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package model provides training, stratified splitting, evaluation, and
// unified feature importance for the supported classifier algorithms.
//
// All three algorithms are driven through the algorithms.Classifier
// capability interface; nothing in this package special-cases one of them.
// Training validates that the target is strictly binary before any
// classifier sees it and fails with InvalidTargetError otherwise.
package model
