// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/praedictus/internal/feature"
	"github.com/tomtom215/praedictus/internal/logging"
	"github.com/tomtom215/praedictus/internal/model"
	"github.com/tomtom215/praedictus/internal/store"
	"github.com/tomtom215/praedictus/internal/validation"
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError is the structured error carried in failed responses.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Stable error codes returned by the API.
const (
	codeValidation      = "VALIDATION_ERROR"
	codeBadPayload      = "INVALID_PAYLOAD"
	codeSchema          = "SCHEMA_ERROR"
	codeInvalidTarget   = "INVALID_TARGET"
	codeUnsupportedAlgo = "UNSUPPORTED_ALGORITHM"
	codeNotFound        = "MODEL_NOT_FOUND"
	codeInternal        = "INTERNAL_ERROR"
)

// sanitizeLogValue strips control characters so attacker-supplied
// strings cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")

	state := "success"
	if apiErr != nil {
		state = "error"
	}
	response := &APIResponse{
		Status: state,
		Data:   data,
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: apiErr,
	}

	payload, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

// respondError sends an error response with a stable code.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	logging.Warn().
		Str("code", code).
		Str("message", sanitizeLogValue(message)).
		Int("status", status).
		Msg("request failed")
	respondJSON(w, r, status, nil, &APIError{Code: code, Message: message, Details: details})
}

// respondDomainError maps domain errors onto HTTP statuses and codes.
// Unrecognized errors become opaque 500s so internals never leak.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *feature.SchemaError
	var targetErr *model.InvalidTargetError
	var algoErr *model.UnsupportedAlgorithmError

	switch {
	case errors.As(err, &schemaErr):
		respondError(w, r, http.StatusBadRequest, codeSchema, schemaErr.Error(), map[string]interface{}{
			"column": schemaErr.Column,
		})
	case errors.As(err, &targetErr):
		respondError(w, r, http.StatusBadRequest, codeInvalidTarget, targetErr.Error(), nil)
	case errors.As(err, &algoErr):
		respondError(w, r, http.StatusBadRequest, codeUnsupportedAlgo, algoErr.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		respondError(w, r, http.StatusNotFound, codeNotFound, "model not found", nil)
	default:
		logging.Error().Err(err).Msg("internal error")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "internal server error", nil)
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown
// payloads with a structured 400. Returns false if a response was
// already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadPayload, fmt.Sprintf("invalid JSON body: %v", err), nil)
		return false
	}
	return true
}

// validateRequest validates a request struct, writing a structured 400
// on failure. Returns false if a response was already written.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	return false
}
