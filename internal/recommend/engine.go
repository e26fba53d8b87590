// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookrec/internal/cache"
	"github.com/tomtom215/bookrec/internal/metrics"
	"github.com/tomtom215/bookrec/internal/models"
	"github.com/tomtom215/bookrec/internal/recommend/algorithms"
)

// Strategy labels used for metrics and cache keys.
const (
	StrategyTop     = "top"
	StrategySimilar = "similar"
	StrategyAuthor  = "author"
)

// Engine answers book recommendation lookups from structures built once in
// NewEngine. Everything except the result cache and the request counters is
// read-only after construction, so the engine is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Catalogue
	books     map[string]models.Book // by ISBN
	canonical map[string]models.Book // by title, smallest ISBN wins
	users     map[int]models.User

	// Derived structures
	popularity *algorithms.Popularity
	matrix     *algorithms.InteractionMatrix
	similarity *algorithms.SimilarityMatrix

	// Per-user and per-author lookups
	userTitles  map[int]map[string]struct{} // titles rated, via the catalogue join
	userISBNs   map[int]map[string]struct{} // ISBNs rated, from raw events
	isbnRatings map[string]ratingAgg        // raw event aggregates per ISBN
	authorISBNs map[string][]string         // ISBNs per author, ascending
	authors     []string                    // distinct non-empty authors, ascending

	// Autocomplete
	titleIndex  *cache.Trie
	authorIndex *cache.Trie

	stats BuildStats

	// Result caches (nil when disabled)
	similarCache *cache.LRU[[]string]
	authorCache  *cache.LRU[[]AuthorPick]

	// Metrics
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	fallbacks    atomic.Int64
}

type ratingAgg struct {
	sum   int
	count int
}

func (a ratingAgg) mean() float64 {
	return float64(a.sum) / float64(a.count)
}

// NewEngine loads every input from provider and builds all derived
// structures. The build is the only place the engine can fail: malformed
// input is reported as an error wrapping models.ErrMalformedInput and no
// partially built engine is returned.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ctx context.Context, provider DataProvider, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Limits.BuildTimeout)
	defer cancel()

	start := time.Now()
	e.logger.Info().Msg("building recommendation engine")

	books, ratings, users, err := e.loadInputs(ctx, provider)
	if err != nil {
		return nil, err
	}
	if err := validateInputs(books, ratings); err != nil {
		return nil, err
	}

	if err := e.build(ctx, books, ratings, users); err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled {
		e.similarCache = cache.NewLRU[[]string](cfg.Cache.MaxEntries, cfg.Cache.TTL)
		e.authorCache = cache.NewLRU[[]AuthorPick](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	duration := time.Since(start)
	e.stats.BuildDurationMS = duration.Milliseconds()
	e.stats.BuiltAt = time.Now()
	metrics.RecordEngineBuild(duration, e.stats.DroppedEvents, e.stats.MatrixTitles, e.stats.MatrixUsers)

	e.logger.Info().
		Int("rating_events", e.stats.RatingEvents).
		Int("joined_rows", e.stats.JoinedRows).
		Int("dropped_events", e.stats.DroppedEvents).
		Int("books", e.stats.Books).
		Int("titles", e.stats.Titles).
		Int("expert_users", e.stats.ExpertUsers).
		Int("matrix_titles", e.stats.MatrixTitles).
		Int("matrix_users", e.stats.MatrixUsers).
		Dur("duration", duration).
		Msg("recommendation engine ready")

	if e.matrix.Empty() {
		e.logger.Warn().Msg("interaction matrix is empty, similar lookups will use the popularity fallback")
	}

	return e, nil
}

// loadInputs fetches the three inputs from the provider.
func (e *Engine) loadInputs(ctx context.Context, provider DataProvider) ([]models.Book, []models.RatingEvent, []models.User, error) {
	books, err := provider.GetBooks(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load books: %w", err)
	}
	ratings, err := provider.GetRatings(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load ratings: %w", err)
	}
	users, err := provider.GetUsers(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load users: %w", err)
	}
	return books, ratings, users, nil
}

// validateInputs rejects records a provider should never have produced.
//
//nolint:gocritic // rangeValCopy: Book passed by value in range, acceptable for clarity
func validateInputs(books []models.Book, ratings []models.RatingEvent) error {
	for i, b := range books {
		if b.ISBN == "" {
			return &models.MalformedInputError{Source: "books", Row: i + 1, Column: "ISBN", Reason: "empty ISBN"}
		}
	}
	for i, r := range ratings {
		if r.ISBN == "" {
			return &models.MalformedInputError{Source: "ratings", Row: i + 1, Column: "ISBN", Reason: "empty ISBN"}
		}
		if !models.ValidScore(r.Score) {
			return &models.MalformedInputError{
				Source: "ratings",
				Row:    i + 1,
				Column: "Book-Rating",
				Value:  fmt.Sprint(r.Score),
				Reason: fmt.Sprintf("score must be in [%d, %d]", models.MinScore, models.MaxScore),
			}
		}
	}
	return nil
}

// build runs every stage in order and records per-stage timings.
func (e *Engine) build(ctx context.Context, books []models.Book, ratings []models.RatingEvent, users []models.User) error {
	stage := time.Now()
	e.books = algorithms.IndexBooks(books)
	e.canonical = algorithms.CanonicalBooks(e.books)
	rows, dropped := algorithms.Join(ratings, e.books)
	e.stats.RatingEvents = len(ratings)
	e.stats.JoinedRows = len(rows)
	e.stats.DroppedEvents = dropped
	e.stats.Books = len(e.books)
	e.recordStage("join", stage)

	if dropped > 0 {
		e.logger.Debug().Int("dropped_events", dropped).Msg("dropped rating events with unknown ISBN")
	}

	stage = time.Now()
	e.popularity = algorithms.NewPopularity(rows, e.canonical)
	e.stats.Titles = e.popularity.Len()
	e.recordStage("popularity", stage)

	if algorithms.ContextCancelled(ctx) {
		return fmt.Errorf("build cancelled: %w", ctx.Err())
	}

	stage = time.Now()
	matrixCfg := algorithms.MatrixConfig{
		ExpertMinRatings: e.config.Matrix.ExpertMinRatings,
		FamousMinRatings: e.config.Matrix.FamousMinRatings,
	}
	e.matrix = algorithms.BuildInteractionMatrix(rows, matrixCfg)
	e.stats.ExpertUsers = len(algorithms.SelectExpertUsers(rows, matrixCfg.ExpertMinRatings))
	e.stats.MatrixTitles = e.matrix.Rows()
	e.stats.MatrixUsers = e.matrix.Cols()
	e.recordStage("matrix", stage)

	stage = time.Now()
	sim, err := algorithms.ComputeCosineSimilarity(ctx, e.matrix, algorithms.SimilarityConfig{
		NumWorkers: e.config.Similarity.NumWorkers,
	})
	if err != nil {
		return fmt.Errorf("compute similarity: %w", err)
	}
	e.similarity = sim
	e.recordStage("similarity", stage)

	stage = time.Now()
	e.buildLookups(books, rows, ratings, users)
	e.recordStage("lookups", stage)

	return nil
}

func (e *Engine) recordStage(name string, start time.Time) {
	d := time.Since(start)
	metrics.RecordBuildStage(name, d)
	e.logger.Debug().Str("stage", name).Dur("duration", d).Msg("build stage complete")
}

// buildLookups precomputes the per-user, per-ISBN and per-author tables.
//
//nolint:gocritic // rangeValCopy: records passed by value in range, acceptable for clarity
func (e *Engine) buildLookups(books []models.Book, rows []algorithms.RatedBook, ratings []models.RatingEvent, users []models.User) {
	e.users = make(map[int]models.User, len(users))
	for _, u := range users {
		if _, exists := e.users[u.ID]; !exists {
			e.users[u.ID] = u
		}
	}

	e.userTitles = make(map[int]map[string]struct{})
	for i := range rows {
		r := &rows[i]
		if r.Title == "" {
			continue
		}
		set := e.userTitles[r.UserID]
		if set == nil {
			set = make(map[string]struct{})
			e.userTitles[r.UserID] = set
		}
		set[r.Title] = struct{}{}
	}

	e.userISBNs = make(map[int]map[string]struct{})
	e.isbnRatings = make(map[string]ratingAgg)
	for _, r := range ratings {
		set := e.userISBNs[r.UserID]
		if set == nil {
			set = make(map[string]struct{})
			e.userISBNs[r.UserID] = set
		}
		set[r.ISBN] = struct{}{}

		if _, known := e.books[r.ISBN]; known {
			agg := e.isbnRatings[r.ISBN]
			agg.sum += r.Score
			agg.count++
			e.isbnRatings[r.ISBN] = agg
		}
	}

	userCount := len(e.users)
	for id := range e.userISBNs {
		if _, ok := e.users[id]; !ok {
			userCount++
		}
	}
	e.stats.Users = userCount

	// Built from the raw catalogue: an ISBN listed under two authors
	// belongs to both.
	e.authorISBNs = make(map[string][]string)
	seen := make(map[[2]string]struct{})
	for _, b := range books {
		if b.Author == "" {
			continue
		}
		pair := [2]string{b.Author, b.ISBN}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		e.authorISBNs[b.Author] = append(e.authorISBNs[b.Author], b.ISBN)
	}
	e.authors = make([]string, 0, len(e.authorISBNs))
	for author, isbns := range e.authorISBNs {
		sort.Strings(isbns)
		e.authors = append(e.authors, author)
	}
	sort.Strings(e.authors)
	e.stats.Authors = len(e.authors)

	e.titleIndex = cache.NewTrie(10)
	for _, s := range e.popularity.Stats() {
		e.titleIndex.Insert(s.Title, s.NumRatings)
	}
	e.authorIndex = cache.NewTrie(10)
	for _, author := range e.authors {
		e.authorIndex.Insert(author, len(e.authorISBNs[author]))
	}
}

// GetTopBooks returns up to count titles with more than minSupport ratings,
// best mean rating first, each with its canonical book metadata.
// A negative minSupport or a count <= 0 uses the configured default.
func (e *Engine) GetTopBooks(ctx context.Context, minSupport, count int) []algorithms.TopBook {
	start := time.Now()
	e.requestCount.Add(1)

	if minSupport < 0 {
		minSupport = e.config.Popularity.MinSupport
	}
	count = e.normalizeCount(count, e.config.Popularity.TopCount)

	top := e.popularity.TopByQuality(minSupport, count)
	metrics.RecordRecommendation(StrategyTop, time.Since(start), len(top))
	return top
}

// TopByVolume returns up to count titles ordered by number of ratings.
// A count <= 0 uses the configured fallback size.
func (e *Engine) TopByVolume(count int) []string {
	count = e.normalizeCount(count, e.config.Popularity.FallbackCount)

	stats := e.popularity.TopByVolume(count)
	titles := make([]string, len(stats))
	for i := range stats {
		titles[i] = stats[i].Title
	}
	return titles
}

// IsIndexed reports whether title is a row of the interaction matrix, i.e.
// whether RecommendSimilar can answer it without the popularity fallback.
func (e *Engine) IsIndexed(title string) bool {
	_, ok := e.matrix.Index(title)
	return ok
}

// RecommendSimilar returns up to count titles most similar to title,
// skipping title itself and every title userID has rated.
//
// An unindexed title is answered with TopByVolume(count), so a count <= 0
// uses the fallback size. This is the cold-start behavior, not an error.
// The result is never padded: fewer than count titles (possibly none) is a
// valid answer.
func (e *Engine) RecommendSimilar(ctx context.Context, title string, userID, count int) []string {
	start := time.Now()
	e.requestCount.Add(1)
	requested := count
	count = e.normalizeCount(count, e.config.Limits.SimilarCount)

	idx, ok := e.matrix.Index(title)
	if !ok {
		e.fallbacks.Add(1)
		metrics.RecordFallback()
		e.logger.Debug().Str("title", title).Msg("title not indexed, using popularity fallback")

		titles := e.TopByVolume(requested)
		metrics.RecordRecommendation(StrategySimilar, time.Since(start), len(titles))
		return titles
	}

	key := fmt.Sprintf("%s:%d:%d:%s", StrategySimilar, userID, count, title)
	if cached, hit := e.similarCacheGet(key); hit {
		metrics.RecordRecommendation(StrategySimilar, time.Since(start), len(cached))
		return cached
	}

	titles := e.rankSimilar(idx, userID, count)
	e.similarCacheAdd(key, titles)

	metrics.RecordRecommendation(StrategySimilar, time.Since(start), len(titles))
	return titles
}

// rankSimilar walks the similarity row of idx in descending order. Equal
// scores keep matrix row order.
func (e *Engine) rankSimilar(idx, userID, count int) []string {
	row := e.similarity.Row(idx)
	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	rated := e.userTitles[userID]
	titles := make([]string, 0, count)
	for _, j := range order {
		if len(titles) == count {
			break
		}
		if j == idx {
			continue
		}
		t := e.matrix.Title(j)
		if _, seen := rated[t]; seen {
			continue
		}
		titles = append(titles, t)
	}
	return titles
}

// RecommendByAuthor returns up to count books by author that userID has not
// rated, best mean rating first (ties by ISBN). Books nobody rated are not
// candidates. Author matching is exact.
func (e *Engine) RecommendByAuthor(ctx context.Context, userID int, author string, count int) []AuthorPick {
	start := time.Now()
	e.requestCount.Add(1)
	count = e.normalizeCount(count, e.config.Limits.AuthorCount)

	key := fmt.Sprintf("%s:%d:%d:%s", StrategyAuthor, userID, count, author)
	if cached, hit := e.authorCacheGet(key); hit {
		metrics.RecordRecommendation(StrategyAuthor, time.Since(start), len(cached))
		return cached
	}

	rated := e.userISBNs[userID]
	picks := make([]AuthorPick, 0)
	for _, isbn := range e.authorISBNs[author] {
		agg, ok := e.isbnRatings[isbn]
		if !ok {
			continue
		}
		if _, seen := rated[isbn]; seen {
			continue
		}
		picks = append(picks, AuthorPick{
			ISBN:       isbn,
			AvgRating:  agg.mean(),
			NumRatings: agg.count,
		})
	}

	// authorISBNs is ISBN ascending, so a stable sort keeps ISBN order on ties.
	sort.SliceStable(picks, func(a, b int) bool {
		return picks[a].AvgRating > picks[b].AvgRating
	})
	if len(picks) > count {
		picks = picks[:count]
	}

	e.authorCacheAdd(key, picks)
	metrics.RecordRecommendation(StrategyAuthor, time.Since(start), len(picks))
	return picks
}

// Authors returns every distinct non-empty author, sorted.
func (e *Engine) Authors() []string {
	out := make([]string, len(e.authors))
	copy(out, e.authors)
	return out
}

// SearchTitles suggests rated titles starting with prefix, most rated first.
func (e *Engine) SearchTitles(prefix string, limit int) []cache.Suggestion {
	return e.titleIndex.Complete(prefix, limit)
}

// SearchAuthors suggests authors starting with prefix, largest catalogue first.
func (e *Engine) SearchAuthors(prefix string, limit int) []cache.Suggestion {
	return e.authorIndex.Complete(prefix, limit)
}

// Book returns the catalogue entry for isbn.
func (e *Engine) Book(isbn string) (models.Book, bool) {
	b, ok := e.books[isbn]
	return b, ok
}

// BookByTitle returns the canonical book for title: the edition with the
// lexicographically smallest ISBN.
func (e *Engine) BookByTitle(title string) (models.Book, bool) {
	b, ok := e.canonical[title]
	return b, ok
}

// TitleStats returns the popularity stat for a rated title.
func (e *Engine) TitleStats(title string) (algorithms.PopularityStat, bool) {
	return e.popularity.Stat(title)
}

// RatedISBNs returns the ISBNs userID has rated, sorted. ISBNs missing from
// the catalogue are included.
func (e *Engine) RatedISBNs(userID int) []string {
	set := e.userISBNs[userID]
	out := make([]string, 0, len(set))
	for isbn := range set {
		out = append(out, isbn)
	}
	sort.Strings(out)
	return out
}

// User returns the users-table record for id.
func (e *Engine) User(id int) (models.User, bool) {
	u, ok := e.users[id]
	return u, ok
}

// HasUser reports whether id is in the users table or has rated anything.
func (e *Engine) HasUser(id int) bool {
	if _, ok := e.users[id]; ok {
		return true
	}
	_, ok := e.userISBNs[id]
	return ok
}

// Stats returns the build summary.
func (e *Engine) Stats() BuildStats {
	return e.stats
}

// GetMetrics returns lookup counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		Fallbacks:    e.fallbacks.Load(),
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// normalizeCount applies the default for count <= 0 and clamps to MaxCount.
func (e *Engine) normalizeCount(count, def int) int {
	if count <= 0 {
		count = def
	}
	if count > e.config.Limits.MaxCount {
		count = e.config.Limits.MaxCount
	}
	return count
}

func (e *Engine) similarCacheGet(key string) ([]string, bool) {
	if e.similarCache == nil {
		return nil, false
	}
	v, ok := e.similarCache.Get(key)
	e.recordCache(StrategySimilar, ok)
	if !ok {
		return nil, false
	}
	out := make([]string, len(v))
	copy(out, v)
	return out, true
}

func (e *Engine) similarCacheAdd(key string, titles []string) {
	if e.similarCache == nil {
		return
	}
	stored := make([]string, len(titles))
	copy(stored, titles)
	e.similarCache.Add(key, stored)
}

func (e *Engine) authorCacheGet(key string) ([]AuthorPick, bool) {
	if e.authorCache == nil {
		return nil, false
	}
	v, ok := e.authorCache.Get(key)
	e.recordCache(StrategyAuthor, ok)
	if !ok {
		return nil, false
	}
	out := make([]AuthorPick, len(v))
	copy(out, v)
	return out, true
}

func (e *Engine) authorCacheAdd(key string, picks []AuthorPick) {
	if e.authorCache == nil {
		return
	}
	stored := make([]AuthorPick, len(picks))
	copy(stored, picks)
	e.authorCache.Add(key, stored)
}

func (e *Engine) recordCache(strategy string, hit bool) {
	if hit {
		e.cacheHits.Add(1)
	} else {
		e.cacheMisses.Add(1)
	}
	metrics.RecordRecommendCache(strategy, hit)
}
