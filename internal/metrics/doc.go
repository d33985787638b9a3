// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package metrics exposes Prometheus instrumentation for training,
// scoring, the model store, and the HTTP API. All collectors are
// registered with the default registry via promauto and served on
// /metrics.
package metrics
