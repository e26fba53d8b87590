// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package algorithms

import (
	"context"
	"runtime"
	"sync"
)

// SimilarityConfig contains configuration for the similarity precompute.
type SimilarityConfig struct {
	// NumWorkers is the number of parallel workers.
	NumWorkers int
}

// DefaultSimilarityConfig returns a config using one worker per CPU.
func DefaultSimilarityConfig() SimilarityConfig {
	return SimilarityConfig{
		NumWorkers: runtime.NumCPU(),
	}
}

// SimilarityMatrix holds pairwise cosine similarities between the rows of an
// InteractionMatrix, in the same order.
//
// Invariants:
//   - square and exactly symmetric
//   - every entry lies in [-1, 1]
//   - the diagonal is 1, except for all-zero rows which are 0 everywhere
type SimilarityMatrix struct {
	n      int
	values []float64 // row-major n*n
}

// ComputeCosineSimilarity computes the similarity of every pair of rows.
//
// Cost is O(T^2 * U) for T titles and U users. Each pair is computed once and
// mirrored so the result is exactly symmetric. Rows are split across
// NumWorkers goroutines; every worker writes a disjoint set of cells, so the
// output does not depend on scheduling.
func ComputeCosineSimilarity(ctx context.Context, m *InteractionMatrix, cfg SimilarityConfig) (*SimilarityMatrix, error) {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}

	n := m.Rows()
	s := &SimilarityMatrix{
		n:      n,
		values: make([]float64, n*n),
	}
	if n == 0 {
		return s, nil
	}

	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		norms[i] = vectorNorm(m.values[i])
	}

	var wg sync.WaitGroup
	chunkSize := (n + cfg.NumWorkers - 1) / cfg.NumWorkers

	for w := 0; w < cfg.NumWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				if ContextCancelled(ctx) {
					return
				}
				s.fillRow(m, norms, i)
			}
		}(start, end)
	}

	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}
	return s, nil
}

// fillRow writes cells (i, j) and (j, i) for j >= i.
func (s *SimilarityMatrix) fillRow(m *InteractionMatrix, norms []float64, i int) {
	if norms[i] == 0 {
		// Zero rows stay 0 against everything, including themselves.
		return
	}
	s.values[i*s.n+i] = 1

	for j := i + 1; j < s.n; j++ {
		if norms[j] == 0 {
			continue
		}
		sim := clampUnit(dotProduct(m.values[i], m.values[j]) / (norms[i] * norms[j]))
		s.values[i*s.n+j] = sim
		s.values[j*s.n+i] = sim
	}
}

// Size returns the number of rows (and columns).
func (s *SimilarityMatrix) Size() int {
	return s.n
}

// At returns the similarity between rows i and j.
func (s *SimilarityMatrix) At(i, j int) float64 {
	return s.values[i*s.n+j]
}

// Row returns a copy of the similarities of row i.
func (s *SimilarityMatrix) Row(i int) []float64 {
	out := make([]float64, s.n)
	copy(out, s.values[i*s.n:(i+1)*s.n])
	return out
}
