package maplayer

import (
	"cmp"
	"slices"
)

// LegendEntry is one row of the category filter.
type LegendEntry struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Visible  bool   `json:"visible"`
}

// Legend counts markers per category. Only categories that have at least one marker
// appear. Known categories come first in their fixed order, the rest alphabetically.
func Legend(markers []Marker, vis Visibility) []LegendEntry {
	counts := make(map[string]int)
	for _, marker := range markers {
		counts[marker.Category]++
	}

	entries := make([]LegendEntry, 0, len(counts))
	for category, count := range counts {
		entries = append(entries, LegendEntry{
			Category: category,
			Count:    count,
			Visible:  vis.Visible(category),
		})
	}

	slices.SortFunc(entries, func(a, b LegendEntry) int {
		return cmp.Or(
			cmp.Compare(categoryRank(a.Category), categoryRank(b.Category)),
			cmp.Compare(a.Category, b.Category),
		)
	})

	return entries
}

func categoryRank(category string) int {
	if idx := slices.Index(knownCategories, category); idx >= 0 {
		return idx
	}

	return len(knownCategories)
}
