package models

import (
	"fmt"
	"math"
	"time"
)

// Route is one memoized driving route from the home base to a destination.
// Once persisted it is never updated; distance, duration and path are a snapshot
// of the provider's answer at first-request time.
type Route struct {
	DestinationID string      `json:"destination_id"`
	Origin        Coordinates `json:"origin"`
	Destination   Coordinates `json:"destination"`
	DistanceKm    float64     `json:"distance_km"`  // Rounded to one decimal.
	DurationMin   int         `json:"duration_min"` // Rounded to whole minutes.
	Path          string      `json:"path"`         // Encoded polyline.
	CreatedAt     time.Time   `json:"created_at"`
}

// Key returns the cache key the route is stored under.
func (r Route) Key() RouteKey {
	return NewRouteKey(r.DestinationID, r.Origin, r.Destination)
}

// RouteKey identifies a cached route. Coordinates are kept at polyline precision so an
// edited destination gets a fresh entry while an unchanged one always hits.
type RouteKey struct {
	DestinationID string
	Origin        Coordinates
	Destination   Coordinates
}

// NewRouteKey builds a key with both points rounded to 5 decimal digits.
func NewRouteKey(destinationID string, origin, destination Coordinates) RouteKey {
	return RouteKey{
		DestinationID: destinationID,
		Origin:        origin.Rounded(),
		Destination:   destination.Rounded(),
	}
}

// String renders the key in a form usable as a cache or singleflight key.
func (k RouteKey) String() string {
	return fmt.Sprintf("%s:%.5f,%.5f:%.5f,%.5f",
		k.DestinationID,
		k.Origin.Latitude, k.Origin.Longitude,
		k.Destination.Latitude, k.Destination.Longitude,
	)
}

// Destination is a place a route can be requested for.
type Destination struct {
	ID        string  `json:"id"        validate:"required"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"       validate:"latitude"`
	Longitude float64 `json:"lng"       validate:"longitude"`
}

// Coordinates returns the destination's position.
func (d Destination) Coordinates() Coordinates {
	return Coordinates{Latitude: d.Latitude, Longitude: d.Longitude}
}

// RoundDistanceKm converts meters to kilometers with one decimal.
func RoundDistanceKm(meters float64) float64 {
	const metersPerKm = 1000
	return math.Round(meters/metersPerKm*10) / 10
}

// RoundDurationMin converts seconds to whole minutes.
func RoundDurationMin(seconds float64) int {
	const secondsPerMinute = 60
	return int(math.Round(seconds / secondsPerMinute))
}
