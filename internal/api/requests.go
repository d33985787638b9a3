// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package api

import (
	"github.com/tomtom215/praedictus/internal/dataset"
)

// DataPayload is the columnar record format accepted by every data
// endpoint: a header plus row-major cell values.
type DataPayload struct {
	Columns []string `json:"columns" validate:"required,min=1"`
	Rows    [][]any  `json:"rows" validate:"required,min=1"`
}

// Table decodes the payload into a dataset table.
func (p *DataPayload) Table() (*dataset.Table, error) {
	return dataset.FromRows(p.Columns, p.Rows)
}

// TrainRequest is the payload for POST /api/v1/models/train.
type TrainRequest struct {
	Data         DataPayload `json:"data" validate:"required"`
	TargetColumn string      `json:"target_column" validate:"required"`
	IDColumn     string      `json:"id_column" validate:"required"`

	// Algorithm is optional; the configured default applies when empty.
	Algorithm string `json:"algorithm"`

	// TestFraction is optional; the configured default applies when zero.
	TestFraction float64 `json:"test_fraction" validate:"omitempty,gt=0,lt=1"`

	// Seed is optional; the configured default applies when zero.
	Seed int64 `json:"seed" validate:"omitempty,gt=0"`
}

// ScoreRequest is the payload for POST /api/v1/models/{id}/score.
type ScoreRequest struct {
	Data DataPayload `json:"data" validate:"required"`
}

// AttributionsRequest is the payload for POST /api/v1/models/{id}/attributions.
type AttributionsRequest struct {
	Data DataPayload `json:"data" validate:"required"`

	// TopFeatures caps each record's contribution list. The configured
	// default applies when zero.
	TopFeatures int `json:"top_features" validate:"omitempty,min=1,max=100"`
}

// RecommendationsRequest is the payload for POST /api/v1/models/{id}/recommendations.
type RecommendationsRequest struct {
	Data DataPayload `json:"data" validate:"required"`

	// Seed drives the deterministic padding draw. The configured
	// default applies when zero.
	Seed int64 `json:"seed" validate:"omitempty,gt=0"`
}
