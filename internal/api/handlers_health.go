// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/bookrec/internal/middleware"
	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend"
)

// StatusResponse is the payload of GET /api/v1/status.
type StatusResponse struct {
	Version       string                     `json:"version"`
	Ready         bool                       `json:"ready"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Build         *recommend.BuildStats      `json:"build,omitempty"`
	Engine        *recommend.Metrics         `json:"engine,omitempty"`
	Config        *recommend.Config          `json:"config,omitempty"`
	Endpoints     []middleware.EndpointStats `json:"endpoints"`
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of engine state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondSuccess(w, r, time.Time{}, map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK once the engine is built, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	e := h.engine.Load()
	if e == nil {
		respondJSON(w, r, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     map[string]any{"status": "not_ready", "engine_built": false},
			Metadata: responseMetadata(r, time.Time{}),
			Error:    &models.APIError{Code: ErrCodeNotReady, Message: "Recommendation engine is still building"},
		})
		return
	}

	stats := e.Stats()
	respondSuccess(w, r, time.Time{}, map[string]any{
		"status":       "ready",
		"engine_built": true,
		"built_at":     stats.BuiltAt,
	})
}

// Status reports version, uptime, the engine build summary and counters,
// and per-route latency.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := StatusResponse{
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Endpoints:     h.perfMon.GetStats(),
	}

	if e := h.engine.Load(); e != nil {
		stats := e.Stats()
		m := e.GetMetrics()
		resp.Ready = true
		resp.Build = &stats
		resp.Engine = &m
		resp.Config = e.GetConfig()
	}

	// Uptime and latency change every call; never serve this from cache.
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     resp,
		Metadata: responseMetadata(r, start),
	})
}
