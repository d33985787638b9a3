// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/praedictus/internal/config"
	"github.com/tomtom215/praedictus/internal/store"
)

func testTrainingConfig() config.TrainingConfig {
	return config.TrainingConfig{
		DefaultAlgorithm: "gradient_boosted_trees",
		TestFraction:     0.2,
		Seed:             42,
		TopFeatures:      5,
		MaxTrainRows:     10000,
	}
}

func newTestServer(t *testing.T, mwCfg MiddlewareConfig) *httptest.Server {
	t.Helper()

	st, err := store.Open(store.Config{InMemory: true})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	handler := NewHandler(st, testTrainingConfig())
	router := NewRouter(handler, NewMiddleware(mwCfg), 32<<20)
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func defaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
		AuthMode:           "none",
	}
}

// trainingPayload builds a learnable synthetic dataset: employees with
// low satisfaction and high overtime attrite.
func trainingPayload() map[string]interface{} {
	columns := []string{
		"Employee_ID", "Department", "Job_Title", "Monthly_Salary",
		"Employee_Satisfaction_Score", "Overtime_Hours", "Years_At_Company",
		"Attrition",
	}
	departments := []string{"IT", "Sales", "HR"}
	rows := make([][]interface{}, 0, 90)
	for i := 0; i < 90; i++ {
		satisfaction := 1.0 + float64(i%5)
		overtime := float64((i * 7) % 30)
		attrition := 0
		if satisfaction < 3 && overtime > 10 {
			attrition = 1
		}
		rows = append(rows, []interface{}{
			fmt.Sprintf("E%03d", i),
			departments[i%len(departments)],
			"Engineer",
			4000 + float64(i%10)*300,
			satisfaction,
			overtime,
			float64(i % 8),
			attrition,
		})
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"columns": columns,
			"rows":    rows,
		},
		"target_column": "Attrition",
		"id_column":     "Employee_ID",
		"seed":          42,
	}
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *APIError       `json:"error"`
}

func doJSON(t *testing.T, method, url string, body interface{}, headers map[string]string) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func trainModel(t *testing.T, srv *httptest.Server) TrainResponse {
	t.Helper()

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/models/train", trainingPayload(), nil)
	if status != http.StatusCreated {
		t.Fatalf("train status = %d, want 201 (error: %+v)", status, env.Error)
	}
	var out TrainResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode train response: %v", err)
	}
	return out
}

func TestTrainReturnsMetricsAndImportance(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	out := trainModel(t, srv)
	if out.ModelID == "" {
		t.Fatal("train returned empty model_id")
	}
	if out.Algorithm != "gradient_boosted_trees" {
		t.Errorf("algorithm = %q, want default gradient_boosted_trees", out.Algorithm)
	}
	if out.TrainRows+out.TestRows != 90 {
		t.Errorf("train+test rows = %d, want 90", out.TrainRows+out.TestRows)
	}

	m := out.Metrics
	for name, v := range map[string]float64{
		"accuracy": m.Accuracy, "precision": m.Precision,
		"recall": m.Recall, "f1": m.F1, "auc": m.AUC,
	} {
		if v < 0 || v > 1 {
			t.Errorf("%s = %v, want in [0,1]", name, v)
		}
	}
	if m.Confusion.Total() != out.TestRows {
		t.Errorf("confusion total = %d, want test rows %d", m.Confusion.Total(), out.TestRows)
	}
	if len(out.FeatureImportance) == 0 {
		t.Error("feature importance is empty")
	}
	for _, fi := range out.FeatureImportance {
		if fi.DisplayName == "" {
			t.Errorf("feature %q has no display name", fi.Feature)
		}
	}
}

func TestTrainRejectsUnknownAlgorithm(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	payload := trainingPayload()
	payload["algorithm"] = "nearest_centroid"
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/models/train", payload, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != codeUnsupportedAlgo {
		t.Errorf("error = %+v, want code %s", env.Error, codeUnsupportedAlgo)
	}
}

func TestTrainRejectsMissingTargetColumn(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	payload := trainingPayload()
	payload["target_column"] = "Quit"
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/models/train", payload, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != codeSchema {
		t.Errorf("error = %+v, want code %s", env.Error, codeSchema)
	}
}

func TestModelLifecycle(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	trained := trainModel(t, srv)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/models", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	var list struct {
		Models []store.Summary `json:"models"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Models) != 1 || list.Models[0].ID != trained.ModelID {
		t.Fatalf("list = %+v, want the trained model", list.Models)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/models/"+trained.ModelID, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("get status = %d, want 200 (error: %+v)", status, env.Error)
	}
	var detail ModelDetail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.IDColumn != "Employee_ID" || len(detail.FeatureNames) == 0 {
		t.Errorf("detail = %+v, want id column and feature names", detail)
	}

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/models/"+trained.ModelID, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", status)
	}

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/models/"+trained.ModelID, nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", status)
	}
	if env.Error == nil || env.Error.Code != codeNotFound {
		t.Errorf("error = %+v, want code %s", env.Error, codeNotFound)
	}
}

func TestScoreReturnsPredictionsAndDepartmentSummary(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	trained := trainModel(t, srv)
	payload := map[string]interface{}{"data": trainingPayload()["data"]}
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/models/"+trained.ModelID+"/score", payload, nil)
	if status != http.StatusOK {
		t.Fatalf("score status = %d, want 200 (error: %+v)", status, env.Error)
	}

	var out ScoreResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode score response: %v", err)
	}
	if len(out.Predictions) != 90 {
		t.Fatalf("predictions = %d, want 90", len(out.Predictions))
	}
	for _, p := range out.Predictions {
		if p.Probability < 0 || p.Probability > 1 {
			t.Errorf("probability for %s = %v, want in [0,1]", p.RecordID, p.Probability)
		}
		switch p.Tier {
		case "Low", "Medium", "High":
		default:
			t.Errorf("tier for %s = %q, want Low/Medium/High", p.RecordID, p.Tier)
		}
	}
	if len(out.DepartmentSummary) != 3 {
		t.Errorf("department summary has %d departments, want 3", len(out.DepartmentSummary))
	}
}

func TestAttributionsTopNAndMethod(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	trained := trainModel(t, srv)
	payload := map[string]interface{}{
		"data":         trainingPayload()["data"],
		"top_features": 3,
	}
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/models/"+trained.ModelID+"/attributions", payload, nil)
	if status != http.StatusOK {
		t.Fatalf("attributions status = %d, want 200 (error: %+v)", status, env.Error)
	}

	var out AttributionsResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode attributions response: %v", err)
	}
	if out.Method != "importance_sign_approximation" {
		t.Errorf("method = %q, want importance_sign_approximation", out.Method)
	}
	if len(out.Attributions) != 90 {
		t.Fatalf("attributions = %d, want 90", len(out.Attributions))
	}
	for _, a := range out.Attributions {
		if len(a.Contributions) > 3 {
			t.Errorf("record %s has %d contributions, want at most 3", a.RecordID, len(a.Contributions))
		}
	}
}

func TestRecommendationsMinimumPerRecord(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	trained := trainModel(t, srv)
	payload := map[string]interface{}{"data": trainingPayload()["data"], "seed": 7}
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/models/"+trained.ModelID+"/recommendations", payload, nil)
	if status != http.StatusOK {
		t.Fatalf("recommendations status = %d, want 200 (error: %+v)", status, env.Error)
	}

	var out RecommendationsResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode recommendations response: %v", err)
	}
	if len(out.Records) != 90 {
		t.Fatalf("records = %d, want 90", len(out.Records))
	}
	for _, rec := range out.Records {
		if len(rec.Recommendations) < 3 {
			t.Errorf("record %s has %d recommendations, want at least 3", rec.RecordID, len(rec.Recommendations))
		}
		seen := make(map[string]struct{})
		for _, rc := range rec.Recommendations {
			if _, dup := seen[rc.Title]; dup {
				t.Errorf("record %s has duplicate recommendation %q", rec.RecordID, rc.Title)
			}
			seen[rc.Title] = struct{}{}
		}
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, defaultMiddlewareConfig())

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/health", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("health status = %d, want 200", status)
	}
	var out HealthResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("health status = %q, want ok", out.Status)
	}
}

func TestJWTAuthentication(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	mwCfg := defaultMiddlewareConfig()
	mwCfg.AuthMode = "jwt"
	mwCfg.JWTSecret = secret
	srv := newTestServer(t, mwCfg)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/models", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", status)
	}
	if env.Error == nil || env.Error.Code != "UNAUTHORIZED" {
		t.Errorf("error = %+v, want UNAUTHORIZED", env.Error)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "analyst",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/models", nil, map[string]string{
		"Authorization": "Bearer " + signed,
	})
	if status != http.StatusOK {
		t.Fatalf("authenticated status = %d, want 200", status)
	}

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/models", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", status)
	}
}
