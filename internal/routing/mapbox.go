package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"golang.org/x/time/rate"
)

// MapboxBaseURL -- Mapbox API base URL.
const MapboxBaseURL = "https://api.mapbox.com"

// ErrMapboxEmptyToken is returned when a request is attempted without an access token.
var ErrMapboxEmptyToken = errors.New("mapbox provider has no access token")

// MapboxProvider implements routing using the Mapbox Directions API.
type MapboxProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Mapbox API
	token   string        // Access token with directions scope
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// NewMapboxProvider creates a new Mapbox routing provider.
func NewMapboxProvider(token string, rateLimit int, timeout time.Duration, log *slog.Logger) *MapboxProvider {
	return &MapboxProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: MapboxBaseURL,
		token:   token,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewMapboxProviderWithClient allows injecting custom HTTP client and base URL.
func NewMapboxProviderWithClient(
	client HTTPClient,
	baseURL string,
	token string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *MapboxProvider {
	return &MapboxProvider{
		client:  client,
		baseURL: baseURL,
		token:   token,
		log:     log,
		limiter: limiter,
	}
}

// Route asks the Mapbox driving profile for the best route with full geometry.
func (mp *MapboxProvider) Route(
	ctx context.Context,
	origin, destination models.Coordinates,
) (*Directions, error) {
	if mp.token == "" {
		return nil, ErrMapboxEmptyToken
	}

	if err := mp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	mp.log.DebugContext(ctx, "Routing using Mapbox", "origin", origin, "destination", destination)

	reqURL, err := url.Parse(mp.baseURL + "/directions/v5/mapbox/driving/" + coordinatePair(origin, destination))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("geometries", "polyline")
	query.Set("overview", "full")
	query.Set("alternatives", "false")
	query.Set("access_token", mp.token)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return fetchDirections(ctx, mp.client, req, mp.log, "mapbox")
}
