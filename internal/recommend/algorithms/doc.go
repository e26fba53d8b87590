// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

// Package algorithms implements the data-shaping and similarity stages of the
// book recommendation engine.
//
// The stages run once, in order, when the engine is built:
//
//   - Join: rating events joined to book metadata on ISBN (unknown ISBNs dropped)
//   - Popularity: per-title rating count and mean, ranked by quality and by volume
//   - InteractionMatrix: dense title x user scores over expert users and famous titles
//   - SimilarityMatrix: pairwise cosine similarity between matrix rows
//
// # Determinism
//
// Matrix rows are titles in ascending order and columns are user IDs in
// ascending order. Rankings break ties by title. Building twice from the
// same input yields identical structures.
//
// # Thread Safety
//
// Every structure in this package is immutable after construction and safe
// for concurrent readers. Accessors return copies.
package algorithms
