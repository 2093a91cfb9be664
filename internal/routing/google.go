package routing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Directions service.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of *maps.Client used by the provider.
type GoogleAPIClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// NewGoogleProvider wraps an initialized Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Route requests driving directions and returns the first route. Google only exposes
// an overview polyline, so the geometry is slightly simplified compared to OSRM.
func (gp *GoogleProvider) Route(ctx context.Context, origin, destination models.Coordinates) (*Directions, error) {
	gp.log.DebugContext(ctx, "Routing using Google Maps", "origin", origin, "destination", destination)

	req := maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        maps.TravelModeDriving,
	}
	routes, _, err := gp.client.Directions(ctx, &req)
	if err != nil {
		// The client reports ZERO_RESULTS and NOT_FOUND statuses as plain errors.
		if strings.Contains(err.Error(), "ZERO_RESULTS") || strings.Contains(err.Error(), "NOT_FOUND") {
			return nil, ErrNoRoute
		}
		return nil, fmt.Errorf("failed to request directions: %w", err)
	}

	if len(routes) == 0 {
		return nil, ErrNoRoute
	}

	best := routes[0]
	if best.OverviewPolyline.Points == "" {
		return nil, fmt.Errorf("%w: google route has no overview polyline", ErrInvalidResponse)
	}

	var meters int
	var seconds float64
	for _, leg := range best.Legs {
		meters += leg.Distance.Meters
		seconds += leg.Duration.Seconds()
	}

	return &Directions{
		DistanceMeters:  float64(meters),
		DurationSeconds: seconds,
		Geometry:        best.OverviewPolyline.Points,
	}, nil
}

func latLng(point models.Coordinates) string {
	const digits = 6
	return strconv.FormatFloat(point.Latitude, 'f', digits, 64) + "," +
		strconv.FormatFloat(point.Longitude, 'f', digits, 64)
}
