// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package dataset provides the typed tabular container consumed by the
// prediction pipeline.
//
// A Table holds an ordered list of column names and rows of dynamically
// typed cells. Column order is significant: the feature codec derives its
// feature-name ordering from it, so decoding preserves the order in which
// columns arrive (CSV header order, or the explicit column list in API
// payloads).
//
// Cells are Value instances: a number, a string, or an explicit missing
// marker. Missing values are first-class so that downstream imputation can
// distinguish "absent value" from "absent column" - the former is imputed,
// the latter is a schema error.
package dataset
