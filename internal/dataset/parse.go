// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package dataset

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/bookrec/internal/models"
)

// Column names as published in the Book-Crossing files.
const (
	colISBN      = "ISBN"
	colTitle     = "Book-Title"
	colAuthor    = "Book-Author"
	colYear      = "Year-Of-Publication"
	colPublisher = "Publisher"
	colImage     = "Image-URL-L"
	colUserID    = "User-ID"
	colRating    = "Book-Rating"
	colLocation  = "Location"
	colAge       = "Age"
)

var (
	bookColumns   = []string{colISBN, colTitle, colAuthor, colYear, colPublisher, colImage}
	ratingColumns = []string{colUserID, colISBN, colRating}
	userColumns   = []string{colUserID, colLocation, colAge}
)

func text(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return strings.TrimSpace(v.String)
}

func parseBook(row int, rec []sql.NullString) (models.Book, error) {
	isbn := text(rec[0])
	if isbn == "" {
		return models.Book{}, &models.MalformedInputError{Source: SourceBooks, Row: row, Column: colISBN, Reason: "empty ISBN"}
	}

	return models.Book{
		ISBN:      isbn,
		Title:     text(rec[1]),
		Author:    text(rec[2]),
		Year:      text(rec[3]),
		Publisher: text(rec[4]),
		ImageURL:  text(rec[5]),
	}, nil
}

func parseRating(row int, rec []sql.NullString) (models.RatingEvent, error) {
	userID, err := parseUserID(SourceRatings, row, rec[0])
	if err != nil {
		return models.RatingEvent{}, err
	}

	isbn := text(rec[1])
	if isbn == "" {
		return models.RatingEvent{}, &models.MalformedInputError{Source: SourceRatings, Row: row, Column: colISBN, Reason: "empty ISBN"}
	}

	raw := text(rec[2])
	score, err := strconv.Atoi(raw)
	if err != nil {
		return models.RatingEvent{}, &models.MalformedInputError{
			Source: SourceRatings, Row: row, Column: colRating, Value: raw, Reason: "not an integer",
		}
	}
	if !models.ValidScore(score) {
		return models.RatingEvent{}, &models.MalformedInputError{
			Source: SourceRatings, Row: row, Column: colRating, Value: raw,
			Reason: fmt.Sprintf("score must be in [%d, %d]", models.MinScore, models.MaxScore),
		}
	}

	return models.RatingEvent{UserID: userID, ISBN: isbn, Score: score}, nil
}

func parseUser(row int, rec []sql.NullString) (models.User, error) {
	id, err := parseUserID(SourceUsers, row, rec[0])
	if err != nil {
		return models.User{}, err
	}

	u := models.User{ID: id, Location: text(rec[1])}

	// Ages are published as floats ("34.0") or "NaN" when unknown.
	if f, err := strconv.ParseFloat(text(rec[2]), 64); err == nil && !math.IsNaN(f) && f >= 0 {
		age := int(f)
		u.Age = &age
	}
	return u, nil
}

func parseUserID(source string, row int, v sql.NullString) (int, error) {
	raw := text(v)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.MalformedInputError{
			Source: source, Row: row, Column: colUserID, Value: raw, Reason: "not an integer",
		}
	}
	return id, nil
}
