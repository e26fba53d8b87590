// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/bookrec/internal/models"
)

// DataProvider supplies the raw inputs the engine is built from.
// This is typically implemented by the dataset package.
type DataProvider interface {
	// GetBooks returns the book catalogue.
	GetBooks(ctx context.Context) ([]models.Book, error)

	// GetRatings returns every rating event.
	GetRatings(ctx context.Context) ([]models.RatingEvent, error)

	// GetUsers returns known users. Providers without a users table may
	// return an empty slice.
	GetUsers(ctx context.Context) ([]models.User, error)
}

// StaticData is a DataProvider backed by in-memory slices.
type StaticData struct {
	Books   []models.Book
	Ratings []models.RatingEvent
	Users   []models.User
}

// GetBooks implements DataProvider.
func (s *StaticData) GetBooks(context.Context) ([]models.Book, error) {
	return s.Books, nil
}

// GetRatings implements DataProvider.
func (s *StaticData) GetRatings(context.Context) ([]models.RatingEvent, error) {
	return s.Ratings, nil
}

// GetUsers implements DataProvider.
func (s *StaticData) GetUsers(context.Context) ([]models.User, error) {
	return s.Users, nil
}

var _ DataProvider = (*StaticData)(nil)

// AuthorPick is one author-scoped recommendation.
type AuthorPick struct {
	// ISBN identifies the edition.
	ISBN string `json:"isbn"`

	// AvgRating is the mean score over all rating events for the ISBN.
	AvgRating float64 `json:"avg_rating"`

	// NumRatings is the number of rating events behind AvgRating.
	NumRatings int `json:"num_ratings"`
}

// BuildStats summarises an engine build.
type BuildStats struct {
	// RatingEvents is the number of raw rating events loaded.
	RatingEvents int `json:"rating_events"`

	// JoinedRows is the number of events whose ISBN is in the catalogue.
	JoinedRows int `json:"joined_rows"`

	// DroppedEvents is the number of events whose ISBN is not in the catalogue.
	DroppedEvents int `json:"dropped_events"`

	// Books is the number of distinct ISBNs in the catalogue.
	Books int `json:"books"`

	// Users is the number of distinct users across the users table and events.
	Users int `json:"users"`

	// Titles is the number of distinct rated titles.
	Titles int `json:"titles"`

	// Authors is the number of distinct authors in the catalogue.
	Authors int `json:"authors"`

	// ExpertUsers is the number of users above the expert threshold.
	ExpertUsers int `json:"expert_users"`

	// MatrixTitles and MatrixUsers are the interaction matrix dimensions.
	MatrixTitles int `json:"matrix_titles"`
	MatrixUsers  int `json:"matrix_users"`

	// BuildDurationMS is how long the build took.
	BuildDurationMS int64 `json:"build_duration_ms"`

	// BuiltAt is when the build completed.
	BuiltAt time.Time `json:"built_at"`
}

// Metrics contains recommendation lookup counters for observability.
type Metrics struct {
	// RequestCount is the total number of recommendation lookups.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of result cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of result cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// Fallbacks is the number of similar lookups served by popularity.
	Fallbacks int64 `json:"fallbacks"`
}
