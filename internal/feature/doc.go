// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package feature implements the fit-once/apply-many feature codec that
// turns raw tabular records into numeric feature vectors.
//
// # Column Typing
//
// After the target and id columns are excluded, every remaining column is
// classified as categorical if its cells are non-numeric or it has fewer
// than 10 distinct observed values; all other numeric columns are treated
// as continuous.
//
// # Frozen Statistics
//
// Fit computes, per continuous column, the median (imputation) and
// mean/standard deviation (scaling), and per categorical column the mode
// (imputation) and the sorted vocabulary (one-hot encoding). These
// statistics are frozen in the returned Fitted value: Transform is a pure
// function of them and reproduces bit-identical output for identical input
// across calls and process restarts.
//
// # Feature Ordering
//
// Feature names are ordered as [continuous columns in original column
// order] followed by [one-hot columns grouped by source column in original
// order, each group sorted by value]. Attribution and importance outputs
// reference these exact names.
//
// # Unknown Values
//
// Missing values are imputed (median or mode). Categorical values never
// seen at fit time encode as the all-zero block for their column. Missing
// columns, by contrast, are schema errors: Transform never zero-fills an
// entire column silently.
package feature
