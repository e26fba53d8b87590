// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

// Package recommend builds and serves book recommendations from explicit
// user ratings.
//
// # Architecture
//
// An Engine is built once from a DataProvider and is read-only afterwards:
//
//   - Join: rating events are inner-joined to the catalogue on ISBN.
//     Events whose ISBN is unknown are dropped and counted.
//   - Popularity: per-title rating count and mean, ranked by quality
//     (mean, above a support threshold) and by volume (count).
//   - Interaction matrix: famous titles x expert users, zero-filled.
//   - Similarity: pairwise cosine similarity between matrix rows.
//   - Lookups: per-user rated sets, per-ISBN rating aggregates, per-author
//     ISBN lists and autocomplete tries.
//
// # Lookups
//
//   - GetTopBooks: best rated titles with enough support.
//   - RecommendSimilar: titles closest to a seed title, minus everything the
//     user already rated. A seed outside the matrix falls back to the most
//     rated titles.
//   - RecommendByAuthor: the author's best rated books the user has not
//     rated yet.
//
// Results are never padded. An empty slice is a valid answer.
//
// # Errors
//
// Only NewEngine returns errors. Malformed input (empty ISBN, score outside
// [0, 10]) fails the build with an error wrapping models.ErrMalformedInput.
//
// # Usage
//
//	engine, err := recommend.NewEngine(ctx, source, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	titles := engine.RecommendSimilar(ctx, "The Lovely Bones: A Novel", 11676, 5)
//	picks := engine.RecommendByAuthor(ctx, 11676, "Stephen King", 3)
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use.
package recommend
