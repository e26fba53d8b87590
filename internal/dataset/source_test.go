// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend"
)

const booksCSV = `ISBN,Book-Title,Book-Author,Year-Of-Publication,Publisher,Image-URL-L
0195153448,Classical Mythology,Mark P. O. Morford,2002,Oxford University Press,http://images.example/0195153448.jpg
0002005018,Clara Callan,Richard Bruce Wright,2001,HarperFlamingo Canada,http://images.example/0002005018.jpg
078946697X,"DK Readers: Creating the X-Men, How It All Began",Michael Teitelbaum,DK Publishing Inc,2000,
`

const ratingsCSV = `User-ID,ISBN,Book-Rating
276725,034545104X,0
276726,0155061224,5
276727,0446520802,0
276729,052165615X,3
`

const usersCSV = `User-ID,Location,Age
1,"nyc, new york, usa",NaN
2,"stockton, california, usa",18.0
3,"moscow, yukon territory, russia",
`

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func openSource(t *testing.T, cfg Config) *CSVSource {
	t.Helper()
	cfg.Threads = 1
	src, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := src.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return src
}

func fixtureConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		BooksPath:   writeCSV(t, dir, "Books.csv", booksCSV),
		RatingsPath: writeCSV(t, dir, "Ratings.csv", ratingsCSV),
		UsersPath:   writeCSV(t, dir, "Users.csv", usersCSV),
	}
}

func intPtr(v int) *int { return &v }

func TestOpen_RequiresPaths(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no paths", Config{}},
		{"no ratings", Config{BooksPath: "Books.csv"}},
		{"no books", Config{RatingsPath: "Ratings.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.cfg, zerolog.Nop()); err == nil {
				t.Error("Open() expected error")
			}
		})
	}
}

func TestCSVSource_GetBooks(t *testing.T) {
	src := openSource(t, fixtureConfig(t))

	books, err := src.GetBooks(context.Background())
	if err != nil {
		t.Fatalf("GetBooks() error = %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("GetBooks() returned %d books, want 3", len(books))
	}

	want := models.Book{
		ISBN:      "0195153448",
		Title:     "Classical Mythology",
		Author:    "Mark P. O. Morford",
		Year:      "2002",
		Publisher: "Oxford University Press",
		ImageURL:  "http://images.example/0195153448.jpg",
	}
	if books[0] != want {
		t.Errorf("books[0] = %+v, want %+v", books[0], want)
	}

	// Quoted title with embedded comma; shifted columns are kept as text.
	if got := books[2].Title; got != "DK Readers: Creating the X-Men, How It All Began" {
		t.Errorf("books[2].Title = %q", got)
	}
	if got := books[2].Year; got != "DK Publishing Inc" {
		t.Errorf("books[2].Year = %q, want raw text", got)
	}
	if got := books[2].ImageURL; got != "" {
		t.Errorf("books[2].ImageURL = %q, want empty", got)
	}
}

func TestCSVSource_GetRatings(t *testing.T) {
	src := openSource(t, fixtureConfig(t))

	ratings, err := src.GetRatings(context.Background())
	if err != nil {
		t.Fatalf("GetRatings() error = %v", err)
	}

	want := []models.RatingEvent{
		{UserID: 276725, ISBN: "034545104X", Score: 0},
		{UserID: 276726, ISBN: "0155061224", Score: 5},
		{UserID: 276727, ISBN: "0446520802", Score: 0},
		{UserID: 276729, ISBN: "052165615X", Score: 3},
	}
	if !reflect.DeepEqual(ratings, want) {
		t.Errorf("GetRatings() = %+v, want %+v", ratings, want)
	}
}

func TestCSVSource_GetUsers(t *testing.T) {
	t.Run("with users file", func(t *testing.T) {
		src := openSource(t, fixtureConfig(t))

		users, err := src.GetUsers(context.Background())
		if err != nil {
			t.Fatalf("GetUsers() error = %v", err)
		}

		want := []models.User{
			{ID: 1, Location: "nyc, new york, usa"},
			{ID: 2, Location: "stockton, california, usa", Age: intPtr(18)},
			{ID: 3, Location: "moscow, yukon territory, russia"},
		}
		if !reflect.DeepEqual(users, want) {
			t.Errorf("GetUsers() = %+v, want %+v", users, want)
		}
	})

	t.Run("without users file", func(t *testing.T) {
		cfg := fixtureConfig(t)
		cfg.UsersPath = ""
		src := openSource(t, cfg)

		users, err := src.GetUsers(context.Background())
		if err != nil {
			t.Fatalf("GetUsers() error = %v", err)
		}
		if users == nil || len(users) != 0 {
			t.Errorf("GetUsers() = %v, want empty non-nil slice", users)
		}
	})
}

func TestCSVSource_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		ratings    string
		books      string
		load       func(*CSVSource) error
		wantSource string
		wantRow    int
		wantColumn string
	}{
		{
			name:       "score out of range",
			ratings:    "User-ID,ISBN,Book-Rating\n1,0001,5\n2,0002,11\n",
			load:       loadRatings,
			wantSource: SourceRatings,
			wantRow:    2,
			wantColumn: "Book-Rating",
		},
		{
			name:       "negative score",
			ratings:    "User-ID,ISBN,Book-Rating\n1,0001,-1\n",
			load:       loadRatings,
			wantSource: SourceRatings,
			wantRow:    1,
			wantColumn: "Book-Rating",
		},
		{
			name:       "non-integer score",
			ratings:    "User-ID,ISBN,Book-Rating\n1,0001,good\n",
			load:       loadRatings,
			wantSource: SourceRatings,
			wantRow:    1,
			wantColumn: "Book-Rating",
		},
		{
			name:       "non-integer user id",
			ratings:    "User-ID,ISBN,Book-Rating\n1,0001,4\n2,0002,4\nabc,0003,4\n",
			load:       loadRatings,
			wantSource: SourceRatings,
			wantRow:    3,
			wantColumn: "User-ID",
		},
		{
			name:       "empty rating isbn",
			ratings:    "User-ID,ISBN,Book-Rating\n1,,4\n",
			load:       loadRatings,
			wantSource: SourceRatings,
			wantRow:    1,
			wantColumn: "ISBN",
		},
		{
			name:       "missing rating column",
			ratings:    "User-ID,ISBN\n1,0001\n",
			load:       loadRatings,
			wantSource: SourceRatings,
			wantColumn: "Book-Rating",
		},
		{
			name:       "missing title column",
			books:      "ISBN,Book-Author,Year-Of-Publication,Publisher,Image-URL-L\n0001,Austen,1815,Murray,\n",
			load:       loadBooks,
			wantSource: SourceBooks,
			wantColumn: "Book-Title",
		},
		{
			name:       "empty book isbn",
			books:      booksHeader + ",Emma,Austen,1815,Murray,\n",
			load:       loadBooks,
			wantSource: SourceBooks,
			wantRow:    1,
			wantColumn: "ISBN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fixtureConfig(t)
			dir := filepath.Dir(cfg.BooksPath)
			if tt.ratings != "" {
				cfg.RatingsPath = writeCSV(t, dir, "Ratings.csv", tt.ratings)
			}
			if tt.books != "" {
				cfg.BooksPath = writeCSV(t, dir, "Books.csv", tt.books)
			}
			src := openSource(t, cfg)

			err := tt.load(src)
			if !errors.Is(err, models.ErrMalformedInput) {
				t.Fatalf("error = %v, want ErrMalformedInput", err)
			}
			var mErr *models.MalformedInputError
			if !errors.As(err, &mErr) {
				t.Fatalf("error %T is not *MalformedInputError", err)
			}
			if mErr.Source != tt.wantSource || mErr.Row != tt.wantRow || mErr.Column != tt.wantColumn {
				t.Errorf("error at %s row %d column %q, want %s row %d column %q",
					mErr.Source, mErr.Row, mErr.Column, tt.wantSource, tt.wantRow, tt.wantColumn)
			}
		})
	}
}

const booksHeader = "ISBN,Book-Title,Book-Author,Year-Of-Publication,Publisher,Image-URL-L\n"

func loadRatings(s *CSVSource) error {
	_, err := s.GetRatings(context.Background())
	return err
}

func loadBooks(s *CSVSource) error {
	_, err := s.GetBooks(context.Background())
	return err
}

func TestCSVSource_MissingFile(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.RatingsPath = filepath.Join(t.TempDir(), "nope.csv")
	src := openSource(t, cfg)

	_, err := src.GetRatings(context.Background())
	if err == nil {
		t.Fatal("GetRatings() expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
	if errors.Is(err, models.ErrMalformedInput) {
		t.Error("missing file should not be reported as malformed input")
	}
}

func TestCSVSource_PathWithQuote(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "o'reilly")
	if err := os.Mkdir(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	src := openSource(t, Config{
		BooksPath:   writeCSV(t, dir, "Books.csv", booksCSV),
		RatingsPath: writeCSV(t, dir, "Ratings.csv", ratingsCSV),
	})

	books, err := src.GetBooks(context.Background())
	if err != nil {
		t.Fatalf("GetBooks() error = %v", err)
	}
	if len(books) != 3 {
		t.Errorf("GetBooks() returned %d books, want 3", len(books))
	}
}

func TestCSVSource_Snapshot(t *testing.T) {
	src := openSource(t, fixtureConfig(t))

	data, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(data.Books) != 3 || len(data.Ratings) != 4 || len(data.Users) != 3 {
		t.Errorf("Snapshot() = %d books, %d ratings, %d users; want 3, 4, 3",
			len(data.Books), len(data.Ratings), len(data.Users))
	}

	// The snapshot feeds the engine directly.
	var _ recommend.DataProvider = data
}

func TestCSVSource_SnapshotError(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.RatingsPath = writeCSV(t, filepath.Dir(cfg.BooksPath), "Ratings.csv", "User-ID,ISBN,Book-Rating\n1,0001,99\n")
	src := openSource(t, cfg)

	_, err := src.Snapshot(context.Background())
	if err == nil {
		t.Fatal("Snapshot() expected error")
	}
	if !strings.Contains(err.Error(), "ratings") {
		t.Errorf("error %q should name the ratings source", err)
	}
}

func TestCSVSource_SnapshotCancelled(t *testing.T) {
	src := openSource(t, fixtureConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Snapshot(ctx); err == nil {
		t.Error("Snapshot() with cancelled context expected error")
	}
}

func TestSnapshot_BuildsEngine(t *testing.T) {
	dir := t.TempDir()
	src := openSource(t, Config{
		BooksPath: writeCSV(t, dir, "Books.csv", booksHeader+
			"0001,A,Author One,2001,Pub,\n"+
			"0002,B,Author Two,2002,Pub,\n"),
		RatingsPath: writeCSV(t, dir, "Ratings.csv", "User-ID,ISBN,Book-Rating\n"+
			"1,0001,8\n1,0002,9\n2,0002,8\n2,9999,5\n"),
	})

	data, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	cfg := recommend.DefaultConfig()
	cfg.Popularity.MinSupport = 0
	engine, err := recommend.NewEngine(context.Background(), data, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	top := engine.GetTopBooks(context.Background(), 0, 5)
	if len(top) == 0 || top[0].Title != "B" {
		t.Fatalf("GetTopBooks() = %+v, want B first", top)
	}
	if top[0].AvgRating != 8.5 {
		t.Errorf("B avg = %v, want 8.5", top[0].AvgRating)
	}
	if got := engine.Stats().DroppedEvents; got != 1 {
		t.Errorf("DroppedEvents = %d, want 1", got)
	}
}
