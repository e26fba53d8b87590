// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package algorithms

import (
	"sort"

	"github.com/tomtom215/bookrec/internal/models"
)

// PopularityStat aggregates the ratings of one title.
type PopularityStat struct {
	Title      string  `json:"title"`
	NumRatings int     `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
}

// TopBook is a popularity stat with the canonical metadata for its title.
type TopBook struct {
	models.Book
	NumRatings int     `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
}

// Popularity ranks titles by rating volume and by rating quality.
//
// It provides two rankings:
//   - Quality: titles with enough support ordered by mean score
//   - Volume: titles ordered by number of ratings, the universal fallback
//
// Both orders are computed once in NewPopularity. A Popularity is read-only
// after construction and safe for concurrent use.
type Popularity struct {
	stats     []PopularityStat // title ascending
	byQuality []int            // indices into stats, mean descending
	byVolume  []int            // indices into stats, count descending
	canonical map[string]models.Book
}

// BuildStats groups joined rows by title and returns one stat per distinct
// title, ordered by title. Rows without a title are ignored.
func BuildStats(rows []RatedBook) []PopularityStat {
	type acc struct {
		count int
		sum   int
	}

	byTitle := make(map[string]*acc)
	for i := range rows {
		r := &rows[i]
		if r.Title == "" {
			continue
		}
		a := byTitle[r.Title]
		if a == nil {
			a = &acc{}
			byTitle[r.Title] = a
		}
		a.count++
		a.sum += r.Score
	}

	stats := make([]PopularityStat, 0, len(byTitle))
	for title, a := range byTitle {
		stats = append(stats, PopularityStat{
			Title:      title,
			NumRatings: a.count,
			AvgRating:  float64(a.sum) / float64(a.count),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Title < stats[j].Title
	})
	return stats
}

// NewPopularity builds both rankings from joined rows. canonical supplies
// the metadata attached to quality results.
func NewPopularity(rows []RatedBook, canonical map[string]models.Book) *Popularity {
	stats := BuildStats(rows)

	byQuality := make([]int, len(stats))
	byVolume := make([]int, len(stats))
	for i := range stats {
		byQuality[i] = i
		byVolume[i] = i
	}

	// stats is title ascending, so a stable sort keeps title order on ties.
	sort.SliceStable(byQuality, func(a, b int) bool {
		sa, sb := &stats[byQuality[a]], &stats[byQuality[b]]
		if sa.AvgRating != sb.AvgRating {
			return sa.AvgRating > sb.AvgRating
		}
		return sa.NumRatings > sb.NumRatings
	})
	sort.SliceStable(byVolume, func(a, b int) bool {
		return stats[byVolume[a]].NumRatings > stats[byVolume[b]].NumRatings
	})

	if canonical == nil {
		canonical = make(map[string]models.Book)
	}

	return &Popularity{
		stats:     stats,
		byQuality: byQuality,
		byVolume:  byVolume,
		canonical: canonical,
	}
}

// Len returns the number of distinct titles.
func (p *Popularity) Len() int {
	return len(p.stats)
}

// Stats returns a copy of all stats ordered by title.
func (p *Popularity) Stats() []PopularityStat {
	out := make([]PopularityStat, len(p.stats))
	copy(out, p.stats)
	return out
}

// Stat returns the stat for a title.
func (p *Popularity) Stat(title string) (PopularityStat, bool) {
	i := sort.Search(len(p.stats), func(i int) bool {
		return p.stats[i].Title >= title
	})
	if i < len(p.stats) && p.stats[i].Title == title {
		return p.stats[i], true
	}
	return PopularityStat{}, false
}

// TopByQuality returns up to count titles with strictly more than minSupport
// ratings, ordered by mean rating descending. Each title appears once and
// carries its canonical book metadata.
func (p *Popularity) TopByQuality(minSupport, count int) []TopBook {
	if count <= 0 {
		return nil
	}

	result := make([]TopBook, 0, min(count, len(p.stats)))
	for _, idx := range p.byQuality {
		if len(result) == count {
			break
		}
		s := &p.stats[idx]
		if s.NumRatings <= minSupport {
			continue
		}
		book, ok := p.canonical[s.Title]
		if !ok {
			book = models.Book{Title: s.Title}
		}
		result = append(result, TopBook{
			Book:       book,
			NumRatings: s.NumRatings,
			AvgRating:  s.AvgRating,
		})
	}
	return result
}

// TopByVolume returns up to count stats ordered by number of ratings
// descending, ties broken by title.
func (p *Popularity) TopByVolume(count int) []PopularityStat {
	if count <= 0 || len(p.byVolume) == 0 {
		return nil
	}
	if count > len(p.byVolume) {
		count = len(p.byVolume)
	}

	result := make([]PopularityStat, count)
	for i, idx := range p.byVolume[:count] {
		result[i] = p.stats[idx]
	}
	return result
}
