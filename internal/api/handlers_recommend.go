// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/bookrec/internal/logging"
	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend"
)

// SimilarResponse is the payload of GET /api/v1/recommendations/similar.
type SimilarResponse struct {
	Title  string `json:"title"`
	UserID int    `json:"user_id"`

	// Fallback is true when the title is not in the interaction matrix and
	// Items are the most rated titles instead.
	Fallback bool `json:"fallback"`

	Items []BookItem `json:"items"`

	// Suggestions holds the most rated titles when Items is empty.
	Suggestions []BookItem `json:"suggestions,omitempty"`
}

// AuthorItem is one author-scoped recommendation with book metadata.
type AuthorItem struct {
	models.Book
	AvgRating  float64 `json:"avg_rating"`
	NumRatings int     `json:"num_ratings"`
}

// AuthorResponse is the payload of GET /api/v1/recommendations/author.
type AuthorResponse struct {
	Author string       `json:"author"`
	UserID int          `json:"user_id"`
	Items  []AuthorItem `json:"items"`
}

// Similar handles GET /api/v1/recommendations/similar?title=&user_id=&count=
// Returns titles rated like the given title that the user has not rated.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	e, ok := h.requireEngine(w, r)
	if !ok {
		return
	}

	req, apiErr := parseSimilarRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	userID := *req.UserID

	fallback := !e.IsIndexed(req.Title)
	titles := e.RecommendSimilar(r.Context(), req.Title, userID, req.Count)

	resp := SimilarResponse{
		Title:    req.Title,
		UserID:   userID,
		Fallback: fallback,
		Items:    titleItems(e, titles),
	}
	if len(resp.Items) == 0 {
		resp.Suggestions = titleItems(e, e.TopByVolume(0))
	}

	logging.Ctx(r.Context()).Debug().
		Str("title", sanitizeLogValue(req.Title)).
		Int("user_id", userID).
		Bool("fallback", fallback).
		Int("results", len(resp.Items)).
		Msg("similar recommendations served")

	respondSuccess(w, r, start, resp)
}

// ByAuthor handles GET /api/v1/recommendations/author?author=&user_id=&count=
// Returns the author's best rated books the user has not rated.
func (h *Handler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	e, ok := h.requireEngine(w, r)
	if !ok {
		return
	}

	req, apiErr := parseAuthorRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	userID := *req.UserID

	picks := e.RecommendByAuthor(r.Context(), userID, req.Author, req.Count)

	respondSuccess(w, r, start, AuthorResponse{
		Author: req.Author,
		UserID: userID,
		Items:  authorItems(e, picks),
	})
}

func authorItems(e *recommend.Engine, picks []recommend.AuthorPick) []AuthorItem {
	items := make([]AuthorItem, 0, len(picks))
	for _, p := range picks {
		b, ok := e.Book(p.ISBN)
		if !ok {
			b = models.Book{ISBN: p.ISBN}
		}
		items = append(items, AuthorItem{Book: b, AvgRating: p.AvgRating, NumRatings: p.NumRatings})
	}
	return items
}
