// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend"
	"github.com/tomtom215/bookrec/internal/recommend/algorithms"
)

// BookItem is a catalogue book with the rating stats of its title.
// Stats are zero for titles nobody rated.
type BookItem struct {
	models.Book
	NumRatings int     `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
}

// UserBooksResponse is the payload of GET /api/v1/users/{userID}/books.
type UserBooksResponse struct {
	UserID int          `json:"user_id"`
	User   *models.User `json:"user,omitempty"`
	Books  []BookItem   `json:"books"`
	Count  int          `json:"count"`
}

// bookItem attaches the title stats of b.
func bookItem(e *recommend.Engine, b models.Book) BookItem {
	item := BookItem{Book: b}
	if stat, ok := e.TitleStats(b.Title); ok {
		item.NumRatings = stat.NumRatings
		item.AvgRating = stat.AvgRating
	}
	return item
}

// titleItems resolves titles to their canonical books, keeping order.
func titleItems(e *recommend.Engine, titles []string) []BookItem {
	items := make([]BookItem, 0, len(titles))
	for _, title := range titles {
		b, ok := e.BookByTitle(title)
		if !ok {
			b = models.Book{Title: title}
		}
		items = append(items, bookItem(e, b))
	}
	return items
}

// TopBooks handles GET /api/v1/books/top?min_support=&count=
// Returns the best rated titles with more than min_support ratings.
func (h *Handler) TopBooks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	e, ok := h.requireEngine(w, r)
	if !ok {
		return
	}

	req, apiErr := parseTopBooksRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	minSupport := -1
	if req.MinSupport != nil {
		minSupport = *req.MinSupport
	}

	top := e.GetTopBooks(r.Context(), minSupport, req.Count)
	if top == nil {
		top = []algorithms.TopBook{}
	}

	respondSuccess(w, r, start, map[string]any{
		"items": top,
		"count": len(top),
	})
}

// Book handles GET /api/v1/books/{isbn}
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	e, ok := h.requireEngine(w, r)
	if !ok {
		return
	}

	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	b, found := e.Book(isbn)
	if !found {
		respondError(w, r, http.StatusNotFound, ErrCodeBookNotFound, "Book not found", nil)
		return
	}

	respondSuccess(w, r, start, bookItem(e, b))
}

// Authors handles GET /api/v1/authors
// Returns every distinct author in the catalogue, sorted.
func (h *Handler) Authors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	e, ok := h.requireEngine(w, r)
	if !ok {
		return
	}

	authors := e.Authors()
	respondSuccess(w, r, start, map[string]any{
		"authors": authors,
		"count":   len(authors),
	})
}

// UserBooks handles GET /api/v1/users/{userID}/books
// Returns the books a user has rated, by ISBN. ISBNs missing from the
// catalogue are listed with the ISBN only.
func (h *Handler) UserBooks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	e, ok := h.requireEngine(w, r)
	if !ok {
		return
	}

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "userID must be an integer", nil)
		return
	}
	if !e.HasUser(userID) {
		respondError(w, r, http.StatusNotFound, ErrCodeUserNotFound, "User not found", nil)
		return
	}

	isbns := e.RatedISBNs(userID)
	books := make([]BookItem, 0, len(isbns))
	for _, isbn := range isbns {
		b, found := e.Book(isbn)
		if !found {
			books = append(books, BookItem{Book: models.Book{ISBN: isbn}})
			continue
		}
		books = append(books, bookItem(e, b))
	}

	resp := UserBooksResponse{UserID: userID, Books: books, Count: len(books)}
	if u, found := e.User(userID); found {
		resp.User = &u
	}
	respondSuccess(w, r, start, resp)
}
