// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/bookrec/internal/metrics"
	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend"
)

// Source names used in errors, logs and metrics.
const (
	SourceBooks   = "books"
	SourceRatings = "ratings"
	SourceUsers   = "users"
)

// Config locates the CSV files and tunes DuckDB.
type Config struct {
	BooksPath   string
	RatingsPath string

	// UsersPath may be empty, in which case GetUsers returns no users.
	UsersPath string

	// MaxMemory is DuckDB's max_memory setting. Default: 1GB.
	MaxMemory string

	// Threads is DuckDB's thread count. Default: runtime.NumCPU().
	Threads int

	// LoadTimeout bounds Snapshot. Default: 5m.
	LoadTimeout time.Duration
}

// CSVSource loads books, ratings and users from CSV files.
type CSVSource struct {
	db     *sql.DB
	cfg    Config
	logger zerolog.Logger
}

var _ recommend.DataProvider = (*CSVSource)(nil)

// Open starts an in-memory DuckDB instance for reading cfg's files. The
// files themselves are not touched until a Get method or Snapshot runs.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*CSVSource, error) {
	if cfg.BooksPath == "" || cfg.RatingsPath == "" {
		return nil, fmt.Errorf("books and ratings paths are required")
	}
	if cfg.MaxMemory == "" {
		cfg.MaxMemory = "1GB"
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Minute
	}

	// Extensions are never needed for read_csv; keep DuckDB off the network.
	connStr := fmt.Sprintf(":memory:?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Threads, cfg.MaxMemory)

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	return &CSVSource{
		db:     db,
		cfg:    cfg,
		logger: logger.With().Str("component", "dataset").Logger(),
	}, nil
}

// Close releases the DuckDB instance.
func (s *CSVSource) Close() error {
	return s.db.Close()
}

// Snapshot loads all three files concurrently and returns them as a
// StaticData provider. The first failure cancels the other loads.
func (s *CSVSource) Snapshot(ctx context.Context) (*recommend.StaticData, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LoadTimeout)
	defer cancel()

	var data recommend.StaticData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		books, err := s.GetBooks(gctx)
		data.Books = books
		return err
	})
	g.Go(func() error {
		ratings, err := s.GetRatings(gctx)
		data.Ratings = ratings
		return err
	})
	g.Go(func() error {
		users, err := s.GetUsers(gctx)
		data.Users = users
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetBooks implements recommend.DataProvider.
func (s *CSVSource) GetBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := s.load(ctx, SourceBooks, s.cfg.BooksPath, bookColumns, func(row int, rec []sql.NullString) error {
		b, err := parseBook(row, rec)
		if err != nil {
			return err
		}
		books = append(books, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetRatings implements recommend.DataProvider.
func (s *CSVSource) GetRatings(ctx context.Context) ([]models.RatingEvent, error) {
	var ratings []models.RatingEvent
	err := s.load(ctx, SourceRatings, s.cfg.RatingsPath, ratingColumns, func(row int, rec []sql.NullString) error {
		r, err := parseRating(row, rec)
		if err != nil {
			return err
		}
		ratings = append(ratings, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetUsers implements recommend.DataProvider. With no users path configured
// it returns an empty slice.
func (s *CSVSource) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if s.cfg.UsersPath == "" {
		return users, nil
	}
	err := s.load(ctx, SourceUsers, s.cfg.UsersPath, userColumns, func(row int, rec []sql.NullString) error {
		u, err := parseUser(row, rec)
		if err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// load reads columns from the CSV at path and hands each record to fn with
// its 1-based data row number.
func (s *CSVSource) load(ctx context.Context, source, path string, columns []string, fn func(row int, rec []sql.NullString) error) (err error) {
	start := time.Now()
	rows := 0
	defer func() {
		metrics.RecordDatasetLoad(source, rows, time.Since(start), err)
		if err != nil {
			s.logger.Error().Err(err).Str("source", source).Str("path", path).Msg("dataset load failed")
			return
		}
		s.logger.Info().
			Str("source", source).
			Str("path", path).
			Int("rows", rows).
			Dur("duration", time.Since(start)).
			Msg("dataset loaded")
	}()

	if _, statErr := os.Stat(path); statErr != nil {
		return fmt.Errorf("%s file: %w", source, statErr)
	}

	table := readCSV(path)
	if err := s.checkColumns(ctx, source, table, columns); err != nil {
		return err
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), table)

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return s.readError(ctx, source, err)
	}
	defer result.Close()

	rec := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range rec {
		dest[i] = &rec[i]
	}

	for result.Next() {
		if err := result.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan %s row %d: %w", source, rows+1, err)
		}
		rows++
		if err := fn(rows, rec); err != nil {
			return err
		}
	}
	if err := result.Err(); err != nil {
		return s.readError(ctx, source, err)
	}
	return nil
}

// checkColumns fails with MalformedInputError if the header lacks any of
// the required columns.
func (s *CSVSource) checkColumns(ctx context.Context, source, table string, required []string) error {
	probe, err := s.db.QueryContext(ctx, "SELECT * FROM "+table+" LIMIT 0")
	if err != nil {
		return s.readError(ctx, source, err)
	}
	defer probe.Close()

	have, err := probe.Columns()
	if err != nil {
		return fmt.Errorf("failed to read %s header: %w", source, err)
	}
	present := make(map[string]struct{}, len(have))
	for _, c := range have {
		present[c] = struct{}{}
	}
	for _, c := range required {
		if _, ok := present[c]; !ok {
			return &models.MalformedInputError{Source: source, Column: c, Reason: "missing required column"}
		}
	}
	return nil
}

// readError classifies a DuckDB failure. Cancellation is passed through;
// anything else while parsing the file is malformed input.
func (s *CSVSource) readError(ctx context.Context, source string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s load cancelled: %w", source, ctxErr)
	}
	return &models.MalformedInputError{Source: source, Reason: err.Error()}
}

// readCSV returns a read_csv table expression for path. Every column is
// read as VARCHAR; typing happens in the row parsers.
func readCSV(path string) string {
	lit := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	return fmt.Sprintf("read_csv(%s, header = true, all_varchar = true, quote = '\"', escape = '\"')", lit)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func closeQuietly(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
