package routing

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of routing provider.
type ProviderType string

const (
	// ProviderTypeOSRM represents an OSRM server (public demo or self-hosted).
	ProviderTypeOSRM ProviderType = "osrm"
	// ProviderTypeMapbox represents Mapbox Directions API.
	ProviderTypeMapbox ProviderType = "mapbox"
	// ProviderTypeGoogle represents Google Maps Directions API.
	ProviderTypeGoogle ProviderType = "google"
)

// defaultTimeout bounds a single provider call when none is configured.
const defaultTimeout = 10 * time.Second

// ProviderConfig holds configuration for creating a routing provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	APIKey    string        // API key or access token (Mapbox, Google)
	BaseURL   string        // Base URL override (OSRM self-hosting)
	RateLimit int           // Rate limit for requests per second
	Timeout   time.Duration // HTTP timeout for a single request
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a routing provider based on the provided configuration.
//
// Supported provider types:
// - "osrm": OSRM route service (free, no API key required)
// - "mapbox": Mapbox Directions API (requires access token)
// - "google": Google Maps Directions API (requires API key)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	switch config.Type {
	case ProviderTypeOSRM:
		return newOSRMProvider(config), nil
	case ProviderTypeMapbox:
		return newMapboxProvider(config)
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newOSRMProvider creates an OSRM routing provider.
func newOSRMProvider(config ProviderConfig) Provider {
	if config.RateLimit <= 0 {
		config.RateLimit = 1
		config.Logger.Warn("Rate limit for OSRM not set, set a default value", "value", config.RateLimit)
	}

	return NewOSRMProvider(config.BaseURL, config.RateLimit, config.Timeout, config.Logger)
}

// newMapboxProvider creates a Mapbox routing provider.
func newMapboxProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("access token is required for Mapbox provider")
	}

	if config.RateLimit <= 0 {
		config.RateLimit = 5
		config.Logger.Warn("Rate limit for Mapbox API not set, set a default value", "value", config.RateLimit)
	}

	provider := NewMapboxProvider(config.APIKey, config.RateLimit, config.Timeout, config.Logger)
	if config.BaseURL != "" {
		provider.baseURL = config.BaseURL
	}

	return provider, nil
}

// newGoogleProvider creates a Google Maps routing provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	if config.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(config.BaseURL))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
