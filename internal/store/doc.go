// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package store persists trained model bundles in BadgerDB.
//
// A bundle couples a serialized classifier with the fitted feature
// codec it was trained against, so a stored model can never be applied
// with a mismatched encoding. Bundles are written with SyncWrites
// enabled; a successful Put is durable across process crashes.
package store
