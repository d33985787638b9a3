// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package retention maps a scored employee record to a ranked, deduplicated
// list of retention recommendations.
//
// The engine is a declarative table of (predicate, template) pairs
// evaluated in fixed precedence: one risk-tier headline, up to one
// recommendation per attribute-threshold rule, at most one
// department-family recommendation, then seeded padding from a generic
// catalog up to a minimum of three entries.
//
// Recommendations carry stable snake_case keys and structured parameters,
// not display strings; locale and translation are handled entirely outside
// this package.
package retention
