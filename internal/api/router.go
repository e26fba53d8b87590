// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/bookrec/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	timeout       time.Duration
}

// NewRouter creates a router. A nil chiMw uses DefaultChiMiddlewareConfig.
// timeout bounds each API request; 0 disables the bound.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, timeout time.Duration) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		timeout:       timeout,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.Compress(5, "application/json"))

	// Set before Route so sub-routers inherit them.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.handler.perfMon.Middleware)
		if router.timeout > 0 {
			r.Use(chimiddleware.Timeout(router.timeout))
		}

		r.Get("/status", router.handler.Status)

		r.Get("/books/top", router.handler.TopBooks)
		r.Get("/books/{isbn}", router.handler.Book)
		r.Get("/authors", router.handler.Authors)
		r.Get("/users/{userID}/books", router.handler.UserBooks)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/similar", router.handler.Similar)
			r.Get("/author", router.handler.ByAuthor)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/titles", router.handler.SearchTitles)
			r.Get("/authors", router.handler.SearchAuthors)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
