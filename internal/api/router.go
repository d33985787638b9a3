// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into the Chi route tree.
type Router struct {
	handler      *Handler
	middleware   *Middleware
	maxBodyBytes int64
}

// NewRouter creates a router for the given handler and middleware.
func NewRouter(handler *Handler, mw *Middleware, maxBodyBytes int64) *Router {
	return &Router{handler: handler, middleware: mw, maxBodyBytes: maxBodyBytes}
}

// Setup builds the HTTP handler with the full route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())

	r.Get("/api/v1/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/models", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(PrometheusMetrics())
		r.Use(router.middleware.Authenticate())
		r.Use(router.limitBody)

		r.Post("/train", router.handler.Train)
		r.Get("/", router.handler.ListModels)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", router.handler.GetModel)
			r.Delete("/", router.handler.DeleteModel)
			r.Post("/score", router.handler.Score)
			r.Post("/attributions", router.handler.Attributions)
			r.Post("/recommendations", router.handler.Recommendations)
		})
	})

	return r
}

// limitBody caps request body size so oversized payloads fail fast
// instead of exhausting memory during JSON decode.
func (router *Router) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, router.maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
