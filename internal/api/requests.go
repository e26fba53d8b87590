// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"

	"github.com/tomtom215/bookrec/internal/models"
)

// Count parameters are capped at 1000 here; the engine applies its own,
// usually lower, configured maximum on top.

// TopBooksRequest is the query for GET /api/v1/books/top.
// A missing min_support uses the engine default; count 0 uses the default.
type TopBooksRequest struct {
	MinSupport *int `query:"min_support" validate:"omitempty,gte=0"`
	Count      int  `query:"count" validate:"gte=0,lte=1000"`
}

// SimilarRequest is the query for GET /api/v1/recommendations/similar.
type SimilarRequest struct {
	Title  string `query:"title" validate:"required,notblank,max=512"`
	UserID *int   `query:"user_id" validate:"required"`
	Count  int    `query:"count" validate:"gte=0,lte=1000"`
}

// AuthorRequest is the query for GET /api/v1/recommendations/author.
type AuthorRequest struct {
	Author string `query:"author" validate:"required,notblank,max=512"`
	UserID *int   `query:"user_id" validate:"required"`
	Count  int    `query:"count" validate:"gte=0,lte=1000"`
}

// SearchRequest is the query for the /api/v1/search endpoints.
type SearchRequest struct {
	Query string `query:"q" validate:"required,notblank,max=200"`
	Limit int    `query:"limit" validate:"gte=0,lte=50"`
}

func parseTopBooksRequest(r *http.Request) (*TopBooksRequest, *models.APIError) {
	minSupport, apiErr := queryInt(r, "min_support")
	if apiErr != nil {
		return nil, apiErr
	}
	count, apiErr := queryIntDefault(r, "count", 0)
	if apiErr != nil {
		return nil, apiErr
	}
	req := &TopBooksRequest{MinSupport: minSupport, Count: count}
	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func parseSimilarRequest(r *http.Request) (*SimilarRequest, *models.APIError) {
	userID, apiErr := queryInt(r, "user_id")
	if apiErr != nil {
		return nil, apiErr
	}
	count, apiErr := queryIntDefault(r, "count", 0)
	if apiErr != nil {
		return nil, apiErr
	}
	// Titles are matched exactly, so only surrounding whitespace is dropped.
	req := &SimilarRequest{Title: queryString(r, "title"), UserID: userID, Count: count}
	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func parseAuthorRequest(r *http.Request) (*AuthorRequest, *models.APIError) {
	userID, apiErr := queryInt(r, "user_id")
	if apiErr != nil {
		return nil, apiErr
	}
	count, apiErr := queryIntDefault(r, "count", 0)
	if apiErr != nil {
		return nil, apiErr
	}
	req := &AuthorRequest{Author: queryString(r, "author"), UserID: userID, Count: count}
	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func parseSearchRequest(r *http.Request) (*SearchRequest, *models.APIError) {
	limit, apiErr := queryIntDefault(r, "limit", 0)
	if apiErr != nil {
		return nil, apiErr
	}
	req := &SearchRequest{Query: queryString(r, "q"), Limit: limit}
	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}
