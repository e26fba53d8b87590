// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package algorithms

import (
	"sort"
)

// MatrixConfig contains the thresholds used to select matrix rows and columns.
type MatrixConfig struct {
	// ExpertMinRatings: users need strictly more ratings than this.
	ExpertMinRatings int

	// FamousMinRatings: titles need at least this many ratings from experts.
	FamousMinRatings int
}

// DefaultMatrixConfig returns the thresholds used by the reference data set.
func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		ExpertMinRatings: 200,
		FamousMinRatings: 50,
	}
}

// InteractionMatrix is a dense title x user table of scores.
//
// Rows are titles in ascending order and columns are user IDs in ascending
// order. A cell holds the mean score the user gave the title, or 0 when the
// user never rated it. The row order is the index space of the similarity
// matrix computed from it.
type InteractionMatrix struct {
	titles     []string
	users      []int
	titleIndex map[string]int
	values     [][]float64
}

// SelectExpertUsers returns the users with strictly more than minRatings rows.
func SelectExpertUsers(rows []RatedBook, minRatings int) map[int]struct{} {
	counts := make(map[int]int)
	for i := range rows {
		counts[rows[i].UserID]++
	}

	experts := make(map[int]struct{})
	for userID, n := range counts {
		if n > minRatings {
			experts[userID] = struct{}{}
		}
	}
	return experts
}

// FilterByUsers keeps the rows whose user is in users, preserving order.
func FilterByUsers(rows []RatedBook, users map[int]struct{}) []RatedBook {
	out := make([]RatedBook, 0)
	for i := range rows {
		if _, ok := users[rows[i].UserID]; ok {
			out = append(out, rows[i])
		}
	}
	return out
}

// SelectFamousTitles returns the titles with at least minRatings rows among
// expertRows. Rows without a title are ignored.
func SelectFamousTitles(expertRows []RatedBook, minRatings int) map[string]struct{} {
	counts := make(map[string]int)
	for i := range expertRows {
		if t := expertRows[i].Title; t != "" {
			counts[t]++
		}
	}

	famous := make(map[string]struct{})
	for title, n := range counts {
		if n >= minRatings {
			famous[title] = struct{}{}
		}
	}
	return famous
}

// BuildInteractionMatrix restricts rows to expert users and famous titles and
// pivots them into a title x user matrix. When a user rated a title more
// than once (duplicate events or several editions) the cell holds the mean.
//
// No experts or no famous titles yields an empty matrix, not an error.
func BuildInteractionMatrix(rows []RatedBook, cfg MatrixConfig) *InteractionMatrix {
	experts := SelectExpertUsers(rows, cfg.ExpertMinRatings)
	expertRows := FilterByUsers(rows, experts)
	famous := SelectFamousTitles(expertRows, cfg.FamousMinRatings)

	type cellKey struct {
		title  string
		userID int
	}
	type cellAcc struct {
		sum   int
		count int
	}

	cells := make(map[cellKey]*cellAcc)
	userSet := make(map[int]struct{})
	for i := range expertRows {
		r := &expertRows[i]
		if _, ok := famous[r.Title]; !ok {
			continue
		}
		k := cellKey{r.Title, r.UserID}
		a := cells[k]
		if a == nil {
			a = &cellAcc{}
			cells[k] = a
		}
		a.sum += r.Score
		a.count++
		userSet[r.UserID] = struct{}{}
	}

	titles := make([]string, 0, len(famous))
	for t := range famous {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	users := make([]int, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	sort.Ints(users)

	titleIndex := make(map[string]int, len(titles))
	for i, t := range titles {
		titleIndex[t] = i
	}
	userIndex := make(map[int]int, len(users))
	for j, u := range users {
		userIndex[u] = j
	}

	values := make([][]float64, len(titles))
	for i := range values {
		values[i] = make([]float64, len(users))
	}
	for k, a := range cells {
		values[titleIndex[k.title]][userIndex[k.userID]] = float64(a.sum) / float64(a.count)
	}

	return &InteractionMatrix{
		titles:     titles,
		users:      users,
		titleIndex: titleIndex,
		values:     values,
	}
}

// Rows returns the number of titles.
func (m *InteractionMatrix) Rows() int {
	return len(m.titles)
}

// Cols returns the number of users.
func (m *InteractionMatrix) Cols() int {
	return len(m.users)
}

// Empty reports whether the matrix has no cells.
func (m *InteractionMatrix) Empty() bool {
	return len(m.titles) == 0 || len(m.users) == 0
}

// Title returns the title of row i.
func (m *InteractionMatrix) Title(i int) string {
	return m.titles[i]
}

// Titles returns a copy of the row labels.
func (m *InteractionMatrix) Titles() []string {
	out := make([]string, len(m.titles))
	copy(out, m.titles)
	return out
}

// Users returns a copy of the column labels.
func (m *InteractionMatrix) Users() []int {
	out := make([]int, len(m.users))
	copy(out, m.users)
	return out
}

// Index returns the row of title, if the title is in the matrix.
func (m *InteractionMatrix) Index(title string) (int, bool) {
	i, ok := m.titleIndex[title]
	return i, ok
}

// At returns the cell for row i and column j.
func (m *InteractionMatrix) At(i, j int) float64 {
	return m.values[i][j]
}

// Row returns a copy of row i.
func (m *InteractionMatrix) Row(i int) []float64 {
	out := make([]float64, len(m.values[i]))
	copy(out, m.values[i])
	return out
}
