// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package algorithms

import (
	"github.com/tomtom215/bookrec/internal/models"
)

// RatedBook is a rating event joined with the metadata of the rated book.
type RatedBook struct {
	UserID int
	ISBN   string
	Title  string
	Author string
	Score  int
}

// IndexBooks maps ISBN to book. When the catalogue lists an ISBN more than
// once the first occurrence wins.
//
//nolint:gocritic // rangeValCopy: Book passed by value in range, acceptable for clarity
func IndexBooks(books []models.Book) map[string]models.Book {
	index := make(map[string]models.Book, len(books))
	for _, b := range books {
		if _, exists := index[b.ISBN]; exists {
			continue
		}
		index[b.ISBN] = b
	}
	return index
}

// Join performs the inner join of rating events to books on ISBN.
//
// Output order follows event order. Events whose ISBN is not in the
// catalogue are dropped; the number dropped is returned for reporting only.
func Join(events []models.RatingEvent, books map[string]models.Book) (rows []RatedBook, dropped int) {
	rows = make([]RatedBook, 0, len(events))
	for _, ev := range events {
		b, ok := books[ev.ISBN]
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, RatedBook{
			UserID: ev.UserID,
			ISBN:   ev.ISBN,
			Title:  b.Title,
			Author: b.Author,
			Score:  ev.Score,
		})
	}
	return rows, dropped
}

// CanonicalBooks picks one book per title: the one with the lexicographically
// smallest ISBN. Books with an empty title are skipped.
//
//nolint:gocritic // rangeValCopy: Book passed by value in range, acceptable for clarity
func CanonicalBooks(books map[string]models.Book) map[string]models.Book {
	canonical := make(map[string]models.Book)
	for isbn, b := range books {
		if b.Title == "" {
			continue
		}
		if cur, ok := canonical[b.Title]; ok && cur.ISBN <= isbn {
			continue
		}
		canonical[b.Title] = b
	}
	return canonical
}
