// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Training metrics
	TrainingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "praedictus_trainings_total",
			Help: "Total number of training runs by algorithm and outcome",
		},
		[]string{"algorithm", "outcome"},
	)

	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "praedictus_training_duration_seconds",
			Help:    "Duration of training runs in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"algorithm"},
	)

	TrainingRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "praedictus_training_rows",
			Help:    "Number of rows per training run",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8), // 100 .. ~1.6M
		},
	)

	// Scoring metrics
	ScoringsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "praedictus_scorings_total",
			Help: "Total number of scoring requests by outcome",
		},
		[]string{"outcome"},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "praedictus_scoring_duration_seconds",
			Help:    "Duration of scoring requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScoredRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "praedictus_scored_records_total",
			Help: "Total number of employee records scored",
		},
	)

	RiskTierAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "praedictus_risk_tier_assignments_total",
			Help: "Total risk tier assignments by tier",
		},
		[]string{"tier"},
	)

	// Model store metrics
	StoredModels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "praedictus_stored_models",
			Help: "Current number of models in the store",
		},
	)

	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "praedictus_store_operations_total",
			Help: "Total model store operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "praedictus_store_gc_runs_total",
			Help: "Total value-log garbage collection runs by outcome",
		},
		[]string{"outcome"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "praedictus_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "praedictus_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "praedictus_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordTraining records one training run.
func RecordTraining(algorithm string, rows int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	TrainingsTotal.WithLabelValues(algorithm, outcome).Inc()
	if err == nil {
		TrainingDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
		TrainingRows.Observe(float64(rows))
	}
}

// RecordScoring records one scoring request and its tier breakdown.
func RecordScoring(duration time.Duration, tierCounts map[string]int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ScoringsTotal.WithLabelValues(outcome).Inc()
	if err != nil {
		return
	}
	ScoringDuration.Observe(duration.Seconds())
	for tier, n := range tierCounts {
		ScoredRecords.Add(float64(n))
		RiskTierAssignments.WithLabelValues(tier).Add(float64(n))
	}
}

// RecordStoreOp records one model store operation.
func RecordStoreOp(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	StoreOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
