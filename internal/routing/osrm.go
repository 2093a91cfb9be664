package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"golang.org/x/time/rate"
)

// OSRMBaseURL is the public OSRM demo server.
const OSRMBaseURL = "https://router.project-osrm.org"

const (
	osrmCodeOk      = "Ok"
	osrmCodeNoRoute = "NoRoute"
	userAgent       = "Roadbook-Route-Service/1.0 (https://github.com/UnknownOlympus/roadbook)"
)

// OSRMProvider implements the Provider interface using an OSRM routing server.
// The public demo server allows roughly one request per second.
type OSRMProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL of the OSRM server
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// directionsResponse is the route service payload shared by OSRM and Mapbox.
type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry string  `json:"geometry"` // encoded polyline
	} `json:"routes"`
}

// NewOSRMProvider creates a new OSRM routing provider.
func NewOSRMProvider(baseURL string, rateLimit int, timeout time.Duration, log *slog.Logger) *OSRMProvider {
	if baseURL == "" {
		baseURL = OSRMBaseURL
	}

	return &OSRMProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewOSRMProviderWithClient creates an OSRM provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewOSRMProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *OSRMProvider {
	return &OSRMProvider{
		client:  client,
		baseURL: baseURL,
		log:     log,
		limiter: limiter,
	}
}

// Route asks OSRM for the best driving route with full-resolution geometry.
func (op *OSRMProvider) Route(
	ctx context.Context,
	origin, destination models.Coordinates,
) (*Directions, error) {
	if err := op.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	op.log.DebugContext(ctx, "Routing using OSRM", "origin", origin, "destination", destination)

	reqURL, err := url.Parse(op.baseURL + "/route/v1/driving/" + coordinatePair(origin, destination))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("overview", "full")
	query.Set("geometries", "polyline")
	query.Set("alternatives", "false")
	query.Set("steps", "false")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	return fetchDirections(ctx, op.client, req, op.log, "osrm")
}

// fetchDirections executes a route request against an OSRM-compatible API and
// extracts the first route.
func fetchDirections(
	ctx context.Context,
	client HTTPClient,
	req *http.Request,
	log *slog.Logger,
	provider string,
) (*Directions, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute routing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result directionsResponse
	decodeErr := json.Unmarshal(body, &result)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, provider)
	default:
		// OSRM reports an unreachable destination as 400 with code NoRoute.
		if decodeErr == nil && result.Code == osrmCodeNoRoute {
			return nil, ErrNoRoute
		}
		log.ErrorContext(ctx, "Routing API error", "provider", provider, "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%s API returned status %d: %s", provider, resp.StatusCode, string(body))
	}

	if decodeErr != nil {
		log.ErrorContext(ctx, "Failed to parse routing response", "provider", provider, "error", decodeErr)
		return nil, fmt.Errorf("failed to decode %s response: %w", provider, decodeErr)
	}

	switch result.Code {
	case osrmCodeOk, "":
	case osrmCodeNoRoute:
		return nil, ErrNoRoute
	default:
		return nil, fmt.Errorf("%w: %s code %q: %s", ErrInvalidResponse, provider, result.Code, result.Message)
	}

	if len(result.Routes) == 0 {
		return nil, ErrNoRoute
	}

	best := result.Routes[0]
	if best.Geometry == "" {
		return nil, fmt.Errorf("%w: %s route has no geometry", ErrInvalidResponse, provider)
	}

	log.DebugContext(ctx, "Routing provider found route",
		"provider", provider, "distance_m", best.Distance, "duration_s", best.Duration)

	return &Directions{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        best.Geometry,
	}, nil
}

// coordinatePair renders two points in the lng,lat;lng,lat form OSRM and Mapbox expect.
func coordinatePair(origin, destination models.Coordinates) string {
	return lngLat(origin) + ";" + lngLat(destination)
}

func lngLat(point models.Coordinates) string {
	const digits = 6
	return strconv.FormatFloat(point.Longitude, 'f', digits, 64) + "," +
		strconv.FormatFloat(point.Latitude, 'f', digits, 64)
}
