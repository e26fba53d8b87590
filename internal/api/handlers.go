// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tomtom215/bookrec/internal/logging"
	"github.com/tomtom215/bookrec/internal/middleware"
	"github.com/tomtom215/bookrec/internal/recommend"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, engine access (this file)
//   - handlers_helpers.go: response envelope and query parsing
//   - handlers_health.go: liveness, readiness and status
//   - handlers_books.go: catalogue, popularity and user history
//   - handlers_recommend.go: similar and author recommendations
//   - handlers_search.go: title and author autocomplete
//
// The engine is attached once it has been built. Until then every data
// endpoint answers 503 NOT_READY, and readiness fails.
type Handler struct {
	engine    atomic.Pointer[recommend.Engine]
	perfMon   *middleware.PerformanceMonitor
	version   string
	startTime time.Time
}

// NewHandler creates a handler with no engine attached. A nil perfMon gets
// a monitor keeping the last 1000 requests.
func NewHandler(version string, perfMon *middleware.PerformanceMonitor) *Handler {
	if perfMon == nil {
		perfMon = middleware.NewPerformanceMonitor(1000)
	}
	return &Handler{
		perfMon:   perfMon,
		version:   version,
		startTime: time.Now(),
	}
}

// SetEngine attaches a built engine. Safe to call while serving.
func (h *Handler) SetEngine(e *recommend.Engine) {
	h.engine.Store(e)
	if e != nil {
		logging.Info().Msg("Recommendation engine attached to API")
	}
}

// Engine returns the attached engine, or nil.
func (h *Handler) Engine() *recommend.Engine {
	return h.engine.Load()
}

// PerformanceMonitor returns the monitor the router records into.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// requireEngine returns the engine or writes 503 NOT_READY.
func (h *Handler) requireEngine(w http.ResponseWriter, r *http.Request) (*recommend.Engine, bool) {
	e := h.engine.Load()
	if e == nil {
		w.Header().Set("Retry-After", "5")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, "Recommendation engine is still building", nil)
		return nil, false
	}
	return e, true
}
