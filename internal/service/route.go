package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/metrics"
	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/UnknownOlympus/roadbook/internal/polyline"
	"github.com/UnknownOlympus/roadbook/internal/repository"
	"github.com/UnknownOlympus/roadbook/internal/routing"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// DefaultProviderTimeout bounds a single routing provider call.
const DefaultProviderTimeout = 10 * time.Second

var (
	// ErrRouteUnavailable means no route could be produced right now. Nothing was cached,
	// so a later call retries. Callers should render without a route.
	ErrRouteUnavailable = errors.New("route unavailable")
	// ErrInvalidRequest is returned for an empty destination id or out-of-range coordinates.
	ErrInvalidRequest = errors.New("invalid route request")
)

// Lookup results used as metric labels.
const (
	resultHit         = "hit"
	resultComputed    = "computed"
	resultUnavailable = "unavailable"
	resultError       = "error"
)

// RouteService returns driving routes from the home base, computing each one at most
// once through the routing provider and serving it from storage afterwards.
type RouteService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Route store
	provider     routing.Provider     // Routing provider for cache misses
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	home         models.Coordinates   // Fixed origin of every route
	timeout      time.Duration        // Upper bound of one provider call
	numWorkers   int                  // Number of concurrent workers for warm-up
	validate     *validator.Validate
	inflight     singleflight.Group
}

// Options configures a RouteService. Zero values fall back to defaults.
type Options struct {
	ProviderName string
	Home         models.Coordinates
	Timeout      time.Duration
	Workers      int
}

// NewRouteService creates a new instance of RouteService.
func NewRouteService(
	log *slog.Logger,
	repo repository.Interface,
	provider routing.Provider,
	metrics *metrics.Metrics,
	opts Options,
) *RouteService {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultProviderTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	return &RouteService{
		log:          log,
		repo:         repo,
		provider:     provider,
		providerName: opts.ProviderName,
		metrics:      metrics,
		home:         opts.Home,
		timeout:      opts.Timeout,
		numWorkers:   opts.Workers,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Home returns the origin every route starts from.
func (rs *RouteService) Home() models.Coordinates {
	return rs.home
}

// GetRoute returns the route from home to the destination. A stored route is returned
// without any network call. On a miss the provider is asked once and the answer is
// stored forever. ErrRouteUnavailable is returned when the provider has no route or fails.
func (rs *RouteService) GetRoute(
	ctx context.Context,
	destinationID string,
	lat, lng float64,
) (*models.Route, error) {
	route, _, err := rs.resolve(ctx, models.Destination{ID: destinationID, Latitude: lat, Longitude: lng})
	return route, err
}

// resolve returns the route and whether it was computed by this call.
func (rs *RouteService) resolve(ctx context.Context, dest models.Destination) (*models.Route, bool, error) {
	if err := rs.validateDestination(dest); err != nil {
		return nil, false, err
	}

	key := models.NewRouteKey(dest.ID, rs.home, dest.Coordinates())

	route, err := rs.repo.FindRoute(ctx, key)
	switch {
	case err == nil:
		rs.metrics.RouteLookups.WithLabelValues(resultHit).Inc()
		return route, false, nil
	case !errors.Is(err, repository.ErrRouteNotFound):
		rs.metrics.RouteLookups.WithLabelValues(resultError).Inc()
		rs.log.ErrorContext(ctx, "Failed to read route cache", "key", key.String(), "error", err)
		return nil, false, fmt.Errorf("failed to look up route: %w", err)
	}

	// Concurrent first requests for one key share a single provider call. The call is
	// detached from the first caller's cancellation since its result serves every waiter.
	val, err, _ := rs.inflight.Do(key.String(), func() (any, error) {
		return rs.compute(context.WithoutCancel(ctx), key)
	})
	if err != nil {
		return nil, false, err
	}

	res := val.(computeResult)

	// Coalesced callers share one result; only the first of them counts it as computed.
	computed := res.computed && res.claimed.CompareAndSwap(false, true)

	return res.route, computed, nil
}

// computeResult carries the route and whether it was produced by the provider.
type computeResult struct {
	route    *models.Route
	computed bool
	claimed  *atomic.Bool
}

func newComputed(route *models.Route) computeResult {
	return computeResult{route: route, computed: true, claimed: new(atomic.Bool)}
}

func (rs *RouteService) validateDestination(dest models.Destination) error {
	if err := rs.validate.Struct(dest); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if !dest.Coordinates().Valid() {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidRequest)
	}

	return nil
}

// compute asks the provider for the route and persists it. An insert that loses the race
// to another writer re-reads and returns the winner's row.
func (rs *RouteService) compute(ctx context.Context, key models.RouteKey) (computeResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, rs.timeout)
	defer cancel()

	startTime := time.Now()
	directions, err := rs.provider.Route(callCtx, key.Origin, key.Destination)
	rs.metrics.RequestSeconds.WithLabelValues(rs.providerName).Observe(time.Since(startTime).Seconds())

	if err == nil {
		// A path that cannot be decoded would draw garbage; treat it as a malformed payload.
		if _, errDecode := polyline.Decode(directions.Geometry); errDecode != nil {
			err = fmt.Errorf("%w: %w", routing.ErrInvalidResponse, errDecode)
		}
	}

	if err != nil {
		rs.metrics.RouteLookups.WithLabelValues(resultUnavailable).Inc()
		if errors.Is(err, routing.ErrNoRoute) {
			rs.metrics.ProviderResults.WithLabelValues(rs.providerName, "no_route").Inc()
			rs.log.WarnContext(ctx, "No route exists", "destination", key.DestinationID, "key", key.String())
		} else {
			rs.metrics.ProviderResults.WithLabelValues(rs.providerName, "failure").Inc()
			rs.log.ErrorContext(ctx, "Routing provider failure",
				"destination", key.DestinationID, "provider", rs.providerName, "error", err)
		}
		return computeResult{}, fmt.Errorf("%w: %w", ErrRouteUnavailable, err)
	}

	rs.metrics.ProviderResults.WithLabelValues(rs.providerName, "success").Inc()

	route := &models.Route{
		DestinationID: key.DestinationID,
		Origin:        key.Origin,
		Destination:   key.Destination,
		DistanceKm:    models.RoundDistanceKm(directions.DistanceMeters),
		DurationMin:   models.RoundDurationMin(directions.DurationSeconds),
		Path:          directions.Geometry,
	}

	err = rs.repo.InsertRoute(ctx, route)
	switch {
	case err == nil:
		rs.metrics.RouteLookups.WithLabelValues(resultComputed).Inc()
		rs.log.InfoContext(ctx, "Route computed and cached",
			"destination", key.DestinationID, "distance_km", route.DistanceKm, "duration_min", route.DurationMin)
		return newComputed(route), nil
	case errors.Is(err, repository.ErrRouteExists):
		rs.metrics.InsertConflicts.Inc()
		rs.log.DebugContext(ctx, "Route cached concurrently, re-reading", "key", key.String())
		existing, errFind := rs.repo.FindRoute(ctx, key)
		if errFind != nil {
			rs.metrics.RouteLookups.WithLabelValues(resultError).Inc()
			return computeResult{}, fmt.Errorf("failed to re-read cached route: %w", errFind)
		}
		rs.metrics.RouteLookups.WithLabelValues(resultHit).Inc()
		return computeResult{route: existing}, nil
	default:
		// The route is still valid for this caller; the next call will try to persist again.
		rs.metrics.RouteLookups.WithLabelValues(resultComputed).Inc()
		rs.log.ErrorContext(ctx, "Failed to cache route", "key", key.String(), "error", err)
		return newComputed(route), nil
	}
}
