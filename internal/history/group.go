package history

import (
	"iter"
	"slices"

	"github.com/piotrekio/mquery/internal/model"
)

// ByDate is an ordered mapping from date to the entries booked on it.
type ByDate struct {
	dates   []model.Date
	entries map[model.Date][]model.Entry
}

// GroupByDate buckets entries by date. Dates are ordered by first appearance, or
// the reverse of that when descending is set. Within a bucket entries keep their
// original order in both cases.
func GroupByDate(entries []model.Entry, descending bool) *ByDate {
	g := &ByDate{entries: make(map[model.Date][]model.Entry)}
	for _, e := range entries {
		if _, seen := g.entries[e.Date]; !seen {
			g.dates = append(g.dates, e.Date)
		}
		g.entries[e.Date] = append(g.entries[e.Date], e)
	}
	if descending {
		slices.Reverse(g.dates)
	}
	return g
}

// Dates returns the bucket keys in iteration order.
func (g *ByDate) Dates() []model.Date {
	return slices.Clone(g.dates)
}

// Entries returns the entries for d, or nil.
func (g *ByDate) Entries(d model.Date) []model.Entry {
	return g.entries[d]
}

// Len returns the number of buckets.
func (g *ByDate) Len() int { return len(g.dates) }

// Count returns the number of entries across all buckets.
func (g *ByDate) Count() int {
	n := 0
	for _, es := range g.entries {
		n += len(es)
	}
	return n
}

// All iterates over the buckets in order.
func (g *ByDate) All() iter.Seq2[model.Date, []model.Entry] {
	return func(yield func(model.Date, []model.Entry) bool) {
		for _, d := range g.dates {
			if !yield(d, g.entries[d]) {
				return
			}
		}
	}
}
