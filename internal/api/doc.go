// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package api provides the HTTP surface of the service using the Chi
// router. It exposes model management (train, list, get, delete) and
// per-model scoring, attribution, and retention-recommendation
// endpoints under /api/v1, plus health and Prometheus metrics.
//
// All responses use a single JSON envelope with status, data, metadata,
// and an optional structured error. Domain errors from the feature and
// model packages map onto stable machine-readable error codes.
package api
