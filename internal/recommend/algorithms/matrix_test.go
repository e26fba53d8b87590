// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package algorithms

import (
	"reflect"
	"sort"
	"testing"
)

func TestSelectExpertUsers(t *testing.T) {
	rows := ratedRows(
		1, "A", 1,
		1, "B", 1,
		1, "C", 1,
		2, "A", 1,
		2, "B", 1,
		3, "A", 1,
	)

	tests := []struct {
		name       string
		minRatings int
		want       []int
	}{
		{"strictly greater than threshold", 2, []int{1}},
		{"threshold below everyone", 0, []int{1, 2, 3}},
		{"nobody qualifies", 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortedInts(SelectExpertUsers(rows, tt.minRatings))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectExpertUsers(%d) = %v, want %v", tt.minRatings, got, tt.want)
			}
		})
	}
}

func TestSelectFamousTitles(t *testing.T) {
	rows := ratedRows(
		1, "A", 1,
		2, "A", 1,
		1, "B", 1,
	)
	rows = append(rows, RatedBook{UserID: 2, Title: ""}, RatedBook{UserID: 3, Title: ""})

	famous := SelectFamousTitles(rows, 2)

	if len(famous) != 1 {
		t.Fatalf("len(famous) = %d, want 1", len(famous))
	}
	if _, ok := famous["A"]; !ok {
		t.Error("A should be famous (2 ratings, threshold inclusive)")
	}
}

func TestBuildInteractionMatrix(t *testing.T) {
	cfg := MatrixConfig{ExpertMinRatings: 2, FamousMinRatings: 2}

	t.Run("restricts to experts and famous titles", func(t *testing.T) {
		rows := ratedRows(
			// user 30: expert
			30, "Y", 4,
			30, "X", 8,
			30, "Rare", 9,
			// user 10: expert
			10, "X", 6,
			10, "Y", 2,
			10, "Z", 5,
			// user 20: not an expert
			20, "X", 10,
			20, "Y", 10,
		)

		m := BuildInteractionMatrix(rows, cfg)

		if got, want := m.Titles(), []string{"X", "Y"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Titles() = %v, want %v", got, want)
		}
		if got, want := m.Users(), []int{10, 30}; !reflect.DeepEqual(got, want) {
			t.Errorf("Users() = %v, want %v", got, want)
		}
		if m.Rows() != 2 || m.Cols() != 2 {
			t.Fatalf("dims = %dx%d, want 2x2", m.Rows(), m.Cols())
		}

		x, ok := m.Index("X")
		if !ok {
			t.Fatal("Index(X) not found")
		}
		if got := m.Row(x); !reflect.DeepEqual(got, []float64{6, 8}) {
			t.Errorf("Row(X) = %v, want [6 8]", got)
		}
		if _, ok := m.Index("Rare"); ok {
			t.Error("Rare should not be a row")
		}
	})

	t.Run("fills absent cells with zero and averages duplicates", func(t *testing.T) {
		rows := ratedRows(
			1, "A", 4,
			1, "A", 8,
			1, "B", 3,
			2, "A", 5,
			2, "B", 7,
			2, "C", 1,
			3, "C", 2,
			3, "B", 1,
			3, "C", 3,
		)

		m := BuildInteractionMatrix(rows, cfg)

		want := map[string][]float64{
			"A": {6, 5, 0},
			"B": {3, 7, 1},
			"C": {0, 1, 2.5},
		}
		for title, wantRow := range want {
			i, ok := m.Index(title)
			if !ok {
				t.Fatalf("Index(%s) not found", title)
			}
			if got := m.Row(i); !reflect.DeepEqual(got, wantRow) {
				t.Errorf("Row(%s) = %v, want %v", title, got, wantRow)
			}
		}
	})

	t.Run("no experts yields empty matrix", func(t *testing.T) {
		m := BuildInteractionMatrix(ratedRows(1, "A", 5, 2, "A", 5), cfg)
		if !m.Empty() || m.Rows() != 0 {
			t.Errorf("matrix = %dx%d, want empty", m.Rows(), m.Cols())
		}
	})

	t.Run("no famous titles yields empty matrix", func(t *testing.T) {
		m := BuildInteractionMatrix(ratedRows(1, "A", 5, 1, "B", 5, 1, "C", 5), cfg)
		if !m.Empty() {
			t.Errorf("matrix = %dx%d, want empty", m.Rows(), m.Cols())
		}
	})

	t.Run("rebuild is identical", func(t *testing.T) {
		rows := denseFixture()
		a := BuildInteractionMatrix(rows, cfg)
		b := BuildInteractionMatrix(rows, cfg)
		if !reflect.DeepEqual(a, b) {
			t.Error("two builds from the same rows differ")
		}
	})
}

func sortedInts(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// denseFixture returns rows where four users rate five titles with varied
// scores, plus one title nobody scored above zero.
func denseFixture() []RatedBook {
	titles := []string{"Emma", "Dracula", "Beloved", "Atonement", "Carrie"}
	var rows []RatedBook
	for u := 1; u <= 4; u++ {
		for i, title := range titles {
			rows = append(rows, RatedBook{
				UserID: u,
				ISBN:   title,
				Title:  title,
				Score:  (u*3 + i*7) % 11,
			})
		}
		rows = append(rows, RatedBook{UserID: u, ISBN: "Zero", Title: "Zero", Score: 0})
	}
	return rows
}
