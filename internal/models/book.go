// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package models

// MinScore and MaxScore bound an explicit rating. A score of 0 is an
// implicit interaction and still counts as a rating event.
const (
	MinScore = 0
	MaxScore = 10
)

// Book is one row of the book catalogue, keyed by ISBN.
//
// Title is not unique: several ISBNs (editions) may carry the same title.
// Aggregations in the recommendation engine are keyed by title, so the
// engine picks one canonical Book per title when it needs metadata.
type Book struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Year      string `json:"year,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// RatingEvent records that a user rated a book. Events are immutable and
// there is no uniqueness constraint on (UserID, ISBN).
type RatingEvent struct {
	UserID int    `json:"user_id"`
	ISBN   string `json:"isbn"`
	Score  int    `json:"score"`
}

// User is a reader from the users table. Only the ID takes part in
// recommendations; Location and Age are carried for display.
type User struct {
	ID       int    `json:"id"`
	Location string `json:"location,omitempty"`
	Age      *int   `json:"age,omitempty"`
}

// ValidScore reports whether score lies in the accepted rating range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
