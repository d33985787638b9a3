// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/praedictus/internal/logging"
	"github.com/tomtom215/praedictus/internal/metrics"
)

// MiddlewareConfig holds configuration for the middleware factories.
type MiddlewareConfig struct {
	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// AuthMode is "none" or "jwt".
	AuthMode  string
	JWTSecret string
}

// Middleware provides Chi-compatible middleware built from production
// implementations in the Chi ecosystem.
type Middleware struct {
	config MiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewMiddleware creates the middleware factory for the given config.
func NewMiddleware(config MiddlewareConfig) *Middleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: config.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	})

	return &Middleware{config: config, cors: corsHandler}
}

// CORS returns the go-chi/cors middleware. Must be installed globally
// so OPTIONS preflight requests are handled on every route.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns IP-keyed rate limiting using go-chi/httprate, or a
// no-op when disabled.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}

// Authenticate returns bearer-token authentication middleware. With
// auth mode "none" it passes every request through.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	if m.config.AuthMode != "jwt" {
		return func(next http.Handler) http.Handler { return next }
	}

	secret := []byte(m.config.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}

			parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil || !parsed.Valid {
				respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return auth[len(prefix):], true
}

// RequestID attaches a request ID to the context and response header,
// and logs request completion with latency.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
			}
			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrometheusMetrics records request counts, latency, and in-flight
// gauge per route pattern.
func PrometheusMetrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			endpoint := chi.RouteContext(r.Context()).RoutePattern()
			if endpoint == "" {
				endpoint = r.URL.Path
			}
			metrics.RecordAPIRequest(r.Method, endpoint, strconv.Itoa(ww.Status()), time.Since(start))
		})
	}
}
