package routing

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/roadbook/internal/models"
)

// Provider is an interface that defines a method for computing a driving route.
// The Route method takes a context and two points, and returns the best route
// between them with its full geometry as an encoded polyline.
type Provider interface {
	Route(ctx context.Context, origin, destination models.Coordinates) (*Directions, error)
}

// Directions is the first (best) route returned by a provider.
type Directions struct {
	DistanceMeters  float64 // Total driving distance in meters.
	DurationSeconds float64 // Total driving time in seconds.
	Geometry        string  // Encoded polyline with 5-digit precision.
}

// Common errors shared by all routing providers.
var (
	// ErrNoRoute is returned when the provider answered but knows no route between the points.
	ErrNoRoute = errors.New("routing provider found no route")
	// ErrInvalidResponse is returned when the provider payload cannot be used.
	ErrInvalidResponse = errors.New("routing provider returned an invalid response")
	// ErrUnauthorized is returned when the provider rejects the configured credentials.
	ErrUnauthorized = errors.New("routing provider rejected credentials")
)
