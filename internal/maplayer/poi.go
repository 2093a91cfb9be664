// Package maplayer merges points of interest, the home base, the destination and the
// cached route into one filterable map layer with an automatically fitted viewport.
//
// Build composes a layer from a complete input. View holds the state of a map screen
// whose route and collections arrive asynchronously, and drops results that arrive for
// a destination no longer viewed.
package maplayer

import (
	"time"

	"github.com/UnknownOlympus/roadbook/internal/models"
)

// Kind is the source entity kind of a marker.
type Kind string

const (
	KindHighlight     Kind = "highlight"
	KindAccommodation Kind = "accommodation"
	KindEvent         Kind = "event"
)

// PointOfInterest is one of *Highlight, *Accommodation or *Event.
// The set is closed; the unexported methods keep other types out.
type PointOfInterest interface {
	Kind() Kind
	id() string
	position() (lat, lng *float64)
	ownCategory() string
}

// Highlight is a sight or activity worth visiting at the destination.
type Highlight struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	PriceLevel  int      `json:"price_level,omitempty"` // 1..4
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"lat,omitempty"`
	Longitude   *float64 `json:"lng,omitempty"`
}

// Accommodation is a place to stay.
type Accommodation struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type,omitempty"`
	Status    string     `json:"status,omitempty"`
	Category  string     `json:"category,omitempty"`
	CheckIn   *time.Time `json:"check_in,omitempty"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	Address   string     `json:"address,omitempty"`
	Latitude  *float64   `json:"lat,omitempty"`
	Longitude *float64   `json:"lng,omitempty"`
}

// Event is something happening at the destination on a given date.
type Event struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Category  string     `json:"category,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Latitude  *float64   `json:"lat,omitempty"`
	Longitude *float64   `json:"lng,omitempty"`
}

func (h *Highlight) Kind() Kind                    { return KindHighlight }
func (h *Highlight) id() string                    { return h.ID }
func (h *Highlight) position() (lat, lng *float64) { return h.Latitude, h.Longitude }
func (h *Highlight) ownCategory() string           { return h.Category }

func (a *Accommodation) Kind() Kind                    { return KindAccommodation }
func (a *Accommodation) id() string                    { return a.ID }
func (a *Accommodation) position() (lat, lng *float64) { return a.Latitude, a.Longitude }
func (a *Accommodation) ownCategory() string           { return a.Category }

func (e *Event) Kind() Kind                    { return KindEvent }
func (e *Event) id() string                    { return e.ID }
func (e *Event) position() (lat, lng *float64) { return e.Latitude, e.Longitude }
func (e *Event) ownCategory() string           { return e.Category }

// Collect turns typed collections into one list of points of interest.
func Collect(highlights []Highlight, accommodations []Accommodation, events []Event) []PointOfInterest {
	pois := make([]PointOfInterest, 0, len(highlights)+len(accommodations)+len(events))
	for i := range highlights {
		pois = append(pois, &highlights[i])
	}
	for i := range accommodations {
		pois = append(pois, &accommodations[i])
	}
	for i := range events {
		pois = append(pois, &events[i])
	}

	return pois
}

// Location returns the point's coordinates, or false when either one is missing or
// outside the WGS84 range.
func Location(poi PointOfInterest) (models.Coordinates, bool) {
	lat, lng := poi.position()
	if lat == nil || lng == nil {
		return models.Coordinates{}, false
	}

	point := models.Coordinates{Latitude: *lat, Longitude: *lng}

	return point, point.Valid()
}
