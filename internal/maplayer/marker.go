package maplayer

import (
	"strings"

	"github.com/UnknownOlympus/roadbook/internal/models"
)

// Known categories, in legend order.
const (
	CategoryFood          = "food"
	CategoryAttraction    = "attraction"
	CategoryNature        = "nature"
	CategoryNightlife     = "nightlife"
	CategoryShopping      = "shopping"
	CategoryCultural      = "cultural"
	CategoryActivity      = "activity"
	CategoryAccommodation = "accommodation"
	CategoryEvent         = "event"
)

var knownCategories = []string{
	CategoryFood,
	CategoryAttraction,
	CategoryNature,
	CategoryNightlife,
	CategoryShopping,
	CategoryCultural,
	CategoryActivity,
	CategoryAccommodation,
	CategoryEvent,
}

// Marker is a point of interest placed on the map.
type Marker struct {
	ID       string             `json:"id"`
	Kind     Kind               `json:"kind"`
	Category string             `json:"category"`
	Position models.Coordinates `json:"position"`
	Source   PointOfInterest    `json:"-"`
}

// DefaultCategory returns the category used when a record has none.
func DefaultCategory(kind Kind) string {
	switch kind {
	case KindAccommodation:
		return CategoryAccommodation
	case KindEvent:
		return CategoryEvent
	default:
		return CategoryAttraction
	}
}

// Normalize builds markers from points of interest. Records without a usable
// coordinate pair are dropped and never counted anywhere.
func Normalize(pois ...PointOfInterest) []Marker {
	markers := make([]Marker, 0, len(pois))
	for _, poi := range pois {
		if poi == nil {
			continue
		}

		position, ok := Location(poi)
		if !ok {
			continue
		}

		category := strings.ToLower(strings.TrimSpace(poi.ownCategory()))
		if category == "" {
			category = DefaultCategory(poi.Kind())
		}

		markers = append(markers, Marker{
			ID:       poi.id(),
			Kind:     poi.Kind(),
			Category: category,
			Position: position,
			Source:   poi,
		})
	}

	return markers
}

// FilterVisible returns the markers whose category is visible. The input is not modified.
func FilterVisible(markers []Marker, vis Visibility) []Marker {
	visible := make([]Marker, 0, len(markers))
	for _, marker := range markers {
		if vis.Visible(marker.Category) {
			visible = append(visible, marker)
		}
	}

	return visible
}
