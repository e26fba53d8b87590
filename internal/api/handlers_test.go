// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend"
)

func ev(userID int, isbn string, score int) models.RatingEvent {
	return models.RatingEvent{UserID: userID, ISBN: isbn, Score: score}
}

// shelfData gives an interaction matrix (experts 1-3, famous titles only):
//
//	Carrie     [0 0 8]
//	Dracula    [0 8 8]
//	Emma       [8 8 0]
//	Persuasion [8 8 0]
//	Silence    [0 0 0]
func shelfData() *recommend.StaticData {
	return &recommend.StaticData{
		Books: []models.Book{
			{ISBN: "0001", Title: "Emma", Author: "Jane Austen", Year: "1815"},
			{ISBN: "0002", Title: "Persuasion", Author: "Jane Austen", Year: "1817"},
			{ISBN: "0003", Title: "Dracula", Author: "Bram Stoker", Year: "1897"},
			{ISBN: "0004", Title: "Carrie", Author: "Stephen King", Year: "1974"},
			{ISBN: "0005", Title: "It", Author: "Stephen King", Year: "1986"},
			{ISBN: "0006", Title: "Misery", Author: "Stephen King", Year: "1987"},
			{ISBN: "0007", Title: "Emma", Author: "Jane Austen", Year: "2003"},
			{ISBN: "0008", Title: "Unread Novel", Author: "Stephen King"},
			{ISBN: "0009", Title: "Silence", Author: "John Cage"},
		},
		Ratings: []models.RatingEvent{
			ev(1, "0001", 8), ev(1, "0002", 8), ev(1, "0003", 0), ev(1, "0004", 0), ev(1, "0009", 0),
			ev(2, "0007", 8), ev(2, "0002", 8), ev(2, "0003", 8), ev(2, "0004", 0), ev(2, "0009", 0),
			ev(3, "0001", 0), ev(3, "0002", 0), ev(3, "0003", 8), ev(3, "0004", 8), ev(3, "0009", 0),
			ev(4, "0003", 5), ev(4, "0005", 9), ev(4, "0006", 7),
			ev(5, "0006", 9), ev(5, "9999", 4),
		},
		Users: []models.User{
			{ID: 1, Location: "london, england, united kingdom"},
			{ID: 42, Location: "stockton, california, usa"},
		},
	}
}

func newTestEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	cfg := recommend.DefaultConfig()
	cfg.Popularity.MinSupport = 2
	cfg.Matrix.ExpertMinRatings = 3
	cfg.Matrix.FamousMinRatings = 2
	cfg.Similarity.NumWorkers = 2

	engine, err := recommend.NewEngine(context.Background(), shelfData(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// newTestRouter returns the full router with rate limiting disabled. A nil
// engine leaves the handler in the building state.
func newTestRouter(t *testing.T, engine *recommend.Engine) (http.Handler, *Handler) {
	t.Helper()
	h := NewHandler("test", nil)
	if engine != nil {
		h.SetEngine(engine)
	}

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://shelf.example"}
	cfg.RateLimitDisabled = true

	return NewRouter(h, NewChiMiddleware(cfg), 0).SetupChi(), h
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doGet(t *testing.T, handler http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("GET %s: decode body %q: %v", target, rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func titlesOf(items []BookItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Title
	}
	return out
}
