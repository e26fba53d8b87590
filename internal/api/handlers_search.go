// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/bookrec/internal/cache"
	"github.com/tomtom215/bookrec/internal/recommend"
)

const defaultSearchLimit = 10

// SearchTitles handles GET /api/v1/search/titles?q=&limit=
// Prefix autocomplete over rated titles, most rated first.
func (h *Handler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, (*recommend.Engine).SearchTitles)
}

// SearchAuthors handles GET /api/v1/search/authors?q=&limit=
// Prefix autocomplete over authors, largest catalogue first.
func (h *Handler) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, (*recommend.Engine).SearchAuthors)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, complete func(e *recommend.Engine, prefix string, limit int) []cache.Suggestion) {
	start := time.Now()
	e, ok := h.requireEngine(w, r)
	if !ok {
		return
	}

	req, apiErr := parseSearchRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	suggestions := complete(e, req.Query, limit)
	if suggestions == nil {
		suggestions = []cache.Suggestion{}
	}

	respondSuccess(w, r, start, map[string]any{
		"query":       req.Query,
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
