// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/praedictus/internal/config"
	"github.com/tomtom215/praedictus/internal/feature"
	"github.com/tomtom215/praedictus/internal/logging"
	"github.com/tomtom215/praedictus/internal/metrics"
	"github.com/tomtom215/praedictus/internal/model"
	"github.com/tomtom215/praedictus/internal/model/algorithms"
	"github.com/tomtom215/praedictus/internal/retention"
	"github.com/tomtom215/praedictus/internal/scoring"
	"github.com/tomtom215/praedictus/internal/store"
)

// Handler implements all API endpoints.
type Handler struct {
	store    *store.Store
	training config.TrainingConfig
	engine   *retention.Engine
	started  time.Time
}

// NewHandler creates a handler backed by the given model store.
func NewHandler(st *store.Store, training config.TrainingConfig) *Handler {
	return &Handler{
		store:    st,
		training: training,
		engine:   retention.NewEngine(),
		started:  time.Now(),
	}
}

// TrainResponse is the response body for POST /api/v1/models/train.
type TrainResponse struct {
	ModelID           string                   `json:"model_id"`
	Algorithm         model.Algorithm          `json:"algorithm"`
	CreatedAt         time.Time                `json:"created_at"`
	TrainRows         int                      `json:"train_rows"`
	TestRows          int                      `json:"test_rows"`
	Metrics           model.Metrics            `json:"metrics"`
	FeatureImportance []FeatureImportanceEntry `json:"feature_importance"`
}

// FeatureImportanceEntry augments an importance score with the
// report-facing display form of the feature name.
type FeatureImportanceEntry struct {
	Feature     string  `json:"feature"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

func displayImportance(imp []model.FeatureImportance) []FeatureImportanceEntry {
	out := make([]FeatureImportanceEntry, len(imp))
	for i, fi := range imp {
		out[i] = FeatureImportanceEntry{
			Feature:     fi.Feature,
			DisplayName: feature.DisplayName(fi.Feature),
			Score:       fi.Score,
		}
	}
	return out
}

// Train fits a classifier on the submitted records, evaluates it on a
// stratified held-out split, and stores the resulting bundle.
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req TrainRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}
	if len(req.Data.Rows) > h.training.MaxTrainRows {
		respondError(w, r, http.StatusBadRequest, codeBadPayload,
			fmt.Sprintf("training data exceeds %d rows", h.training.MaxTrainRows), nil)
		return
	}

	algName := req.Algorithm
	if algName == "" {
		algName = h.training.DefaultAlgorithm
	}
	alg, err := model.ParseAlgorithm(algName)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	testFraction := req.TestFraction
	if testFraction == 0 {
		testFraction = h.training.TestFraction
	}
	seed := req.Seed
	if seed == 0 {
		seed = h.training.Seed
	}

	tbl, err := req.Data.Table()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadPayload, err.Error(), nil)
		return
	}

	codec := feature.NewCodec()
	x, y, fitted, err := codec.Fit(tbl, req.TargetColumn, req.IDColumn)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	xTrain, xTest, yTrain, yTest, err := model.Split(x, y, testFraction, seed)
	if err != nil {
		metrics.RecordTraining(string(alg), len(y), time.Since(start), err)
		respondDomainError(w, r, err)
		return
	}

	clf, err := model.Train(xTrain, yTrain, alg, model.TrainOptions{Seed: seed})
	if err != nil {
		metrics.RecordTraining(string(alg), len(y), time.Since(start), err)
		respondDomainError(w, r, err)
		return
	}

	evalMetrics, err := model.Evaluate(clf, xTest, yTest)
	if err != nil {
		metrics.RecordTraining(string(alg), len(y), time.Since(start), err)
		respondDomainError(w, r, err)
		return
	}

	importance, err := model.Importance(clf, fitted.FeatureNames)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	serialized, err := algorithms.Marshal(clf)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	bundle := &store.Bundle{
		Algorithm:    alg,
		TargetColumn: req.TargetColumn,
		IDColumn:     req.IDColumn,
		Seed:         seed,
		TrainRows:    len(yTrain),
		TestRows:     len(yTest),
		Fitted:       fitted,
		Classifier:   serialized,
		Metrics:      evalMetrics,
	}
	id, err := h.store.Put(bundle)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	metrics.RecordTraining(string(alg), len(y), time.Since(start), nil)
	logging.Ctx(r.Context()).Info().
		Str("model_id", id).
		Str("algorithm", string(alg)).
		Int("train_rows", len(yTrain)).
		Int("test_rows", len(yTest)).
		Float64("auc", evalMetrics.AUC).
		Dur("elapsed", time.Since(start)).
		Msg("model trained")

	respondJSON(w, r, http.StatusCreated, TrainResponse{
		ModelID:           id,
		Algorithm:         alg,
		CreatedAt:         bundle.CreatedAt,
		TrainRows:         len(yTrain),
		TestRows:          len(yTest),
		Metrics:           evalMetrics,
		FeatureImportance: displayImportance(importance),
	}, nil)
}

// ListModels returns summaries of all stored models, newest first.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.List()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{"models": summaries}, nil)
}

// ModelDetail is the response body for GET /api/v1/models/{id}.
type ModelDetail struct {
	store.Summary
	IDColumn          string                   `json:"id_column"`
	Seed              int64                    `json:"seed"`
	FeatureNames      []string                 `json:"feature_names"`
	FeatureImportance []FeatureImportanceEntry `json:"feature_importance"`
}

// GetModel returns one model's metadata, metrics, and importance.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	bundle, clf, ok := h.loadModel(w, r)
	if !ok {
		return
	}

	importance, err := model.Importance(clf, bundle.Fitted.FeatureNames)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, ModelDetail{
		Summary:           bundle.Summary(),
		IDColumn:          bundle.IDColumn,
		Seed:              bundle.Seed,
		FeatureNames:      bundle.Fitted.FeatureNames,
		FeatureImportance: displayImportance(importance),
	}, nil)
}

// DeleteModel removes a stored model.
func (h *Handler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"model_id": id, "state": "deleted"}, nil)
}

// ScoreResponse is the response body for POST /api/v1/models/{id}/score.
type ScoreResponse struct {
	ModelID           string                      `json:"model_id"`
	Predictions       []scoring.Prediction        `json:"predictions"`
	DepartmentSummary []retention.DepartmentStats `json:"department_summary,omitempty"`
}

// Score applies a stored model to the submitted records. When the
// records carry a department column, the response also includes
// per-department aggregates.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	bundle, clf, ok := h.loadModel(w, r)
	if !ok {
		return
	}

	var req ScoreRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}
	tbl, err := req.Data.Table()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadPayload, err.Error(), nil)
		return
	}

	preds, err := scoring.Score(feature.NewCodec(), bundle.Fitted, clf, tbl, bundle.IDColumn)
	if err != nil {
		metrics.RecordScoring(time.Since(start), nil, err)
		respondDomainError(w, r, err)
		return
	}

	tierCounts := make(map[string]int)
	for _, p := range preds {
		tierCounts[string(p.Tier)]++
	}
	metrics.RecordScoring(time.Since(start), tierCounts, nil)

	resp := ScoreResponse{ModelID: bundle.ID, Predictions: preds}
	if tbl.HasColumn(retention.ColDepartment) {
		resp.DepartmentSummary = retention.DepartmentSummary(tbl, preds, bundle.IDColumn)
	}
	respondJSON(w, r, http.StatusOK, resp, nil)
}

// AttributionsResponse is the response body for POST /api/v1/models/{id}/attributions.
type AttributionsResponse struct {
	ModelID string `json:"model_id"`

	// Method documents that contributions are a global-importance times
	// local-direction approximation, not exact per-record explanations.
	Method string `json:"method"`

	Attributions []scoring.Attribution `json:"attributions"`
}

// Attributions estimates per-record feature contributions for the
// submitted records.
func (h *Handler) Attributions(w http.ResponseWriter, r *http.Request) {
	bundle, clf, ok := h.loadModel(w, r)
	if !ok {
		return
	}

	var req AttributionsRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}
	topN := req.TopFeatures
	if topN == 0 {
		topN = h.training.TopFeatures
	}

	tbl, err := req.Data.Table()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadPayload, err.Error(), nil)
		return
	}

	attrs, err := scoring.Attribute(feature.NewCodec(), bundle.Fitted, clf, tbl, bundle.IDColumn, topN)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, AttributionsResponse{
		ModelID:      bundle.ID,
		Method:       "importance_sign_approximation",
		Attributions: attrs,
	}, nil)
}

// RecordRecommendations pairs one scored record with its retention
// recommendations.
type RecordRecommendations struct {
	RecordID        string                     `json:"record_id"`
	Probability     float64                    `json:"probability"`
	RiskTier        scoring.RiskTier           `json:"risk_tier"`
	Recommendations []retention.Recommendation `json:"recommendations"`
}

// RecommendationsResponse is the response body for
// POST /api/v1/models/{id}/recommendations.
type RecommendationsResponse struct {
	ModelID string                  `json:"model_id"`
	Records []RecordRecommendations `json:"records"`
}

// Recommendations scores the submitted records and produces ranked
// retention recommendations per record. The submitted table doubles as
// the peer-reference population for salary comparisons.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	bundle, clf, ok := h.loadModel(w, r)
	if !ok {
		return
	}

	var req RecommendationsRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = h.training.Seed
	}

	tbl, err := req.Data.Table()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadPayload, err.Error(), nil)
		return
	}

	codec := feature.NewCodec()
	preds, err := scoring.Score(codec, bundle.Fitted, clf, tbl, bundle.IDColumn)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	attrs, err := scoring.Attribute(codec, bundle.Fitted, clf, tbl, bundle.IDColumn, h.training.TopFeatures)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	records := make([]RecordRecommendations, len(preds))
	for i, pred := range preds {
		topFeatures := make([]string, len(attrs[i].Contributions))
		for j, c := range attrs[i].Contributions {
			topFeatures[j] = c.Feature
		}

		recs := h.engine.Recommend(retention.Request{
			Record:      tbl.Row(i),
			Tier:        pred.Tier,
			TopFeatures: topFeatures,
			Reference:   tbl,
			Seed:        seed + int64(i),
		})

		records[i] = RecordRecommendations{
			RecordID:        pred.RecordID,
			Probability:     pred.Probability,
			RiskTier:        pred.Tier,
			Recommendations: recs,
		}
	}

	respondJSON(w, r, http.StatusOK, RecommendationsResponse{ModelID: bundle.ID, Records: records}, nil)
}

// HealthResponse is the response body for GET /api/v1/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	StoredModels  int     `json:"stored_models"`
}

// Health reports service liveness and store reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.List()
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "model store unavailable", nil)
		return
	}
	respondJSON(w, r, http.StatusOK, HealthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.started).Seconds(),
		StoredModels:  len(summaries),
	}, nil)
}

// loadModel fetches the bundle addressed by the route and deserializes
// its classifier. Returns false if a response was already written.
func (h *Handler) loadModel(w http.ResponseWriter, r *http.Request) (*store.Bundle, algorithms.Classifier, bool) {
	id := chi.URLParam(r, "id")
	bundle, err := h.store.Get(id)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, nil, false
	}
	clf, err := algorithms.Unmarshal(bundle.Classifier)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, nil, false
	}
	return bundle, clf, true
}
