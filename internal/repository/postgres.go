package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// FindRoute returns the route stored under the key, or ErrRouteNotFound.
func (r *Repository) FindRoute(ctx context.Context, key models.RouteKey) (*models.Route, error) {
	query := `
		SELECT destination_id, origin_lat, origin_lng, dest_lat, dest_lng,
			distance_km, duration_min, path, created_at
		FROM route_cache
		WHERE
			destination_id = $1
			AND origin_lat = $2 AND origin_lng = $3
			AND dest_lat = $4 AND dest_lng = $5;
	`

	var route models.Route
	err := r.db.QueryRow(ctx, query,
		key.DestinationID,
		key.Origin.Latitude, key.Origin.Longitude,
		key.Destination.Latitude, key.Destination.Longitude,
	).Scan(
		&route.DestinationID,
		&route.Origin.Latitude, &route.Origin.Longitude,
		&route.Destination.Latitude, &route.Destination.Longitude,
		&route.DistanceKm, &route.DurationMin, &route.Path, &route.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to query cached route: %w", err)
	}

	r.log.DebugContext(ctx, "Cached route found", "key", key.String())

	return &route, nil
}

// InsertRoute stores a new route and fills its creation timestamp.
// A concurrent writer that stored the same key first yields ErrRouteExists.
func (r *Repository) InsertRoute(ctx context.Context, route *models.Route) error {
	query := `
		INSERT INTO route_cache (
			destination_id, origin_lat, origin_lng, dest_lat, dest_lng,
			distance_km, duration_min, path
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at;
	`

	key := route.Key()
	err := r.db.QueryRow(ctx, query,
		key.DestinationID,
		key.Origin.Latitude, key.Origin.Longitude,
		key.Destination.Latitude, key.Destination.Longitude,
		route.DistanceKm, route.DurationMin, route.Path,
	).Scan(&route.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrRouteExists
		}
		return fmt.Errorf("failed to insert route: %w", err)
	}

	route.Origin, route.Destination = key.Origin, key.Destination

	return nil
}
