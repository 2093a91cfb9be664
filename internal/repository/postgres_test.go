package repository_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/UnknownOlympus/roadbook/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	findRouteQuery   = `SELECT destination_id, origin_lat, origin_lng, dest_lat, dest_lng, distance_km, duration_min, path, created_at FROM route_cache`
	insertRouteQuery = `INSERT INTO route_cache`
	schemaQuery      = `CREATE TABLE IF NOT EXISTS route_cache`
)

var routeColumns = []string{
	"destination_id", "origin_lat", "origin_lng", "dest_lat", "dest_lng",
	"distance_km", "duration_min", "path", "created_at",
}

func testKey() models.RouteKey {
	return models.NewRouteKey(
		"D1",
		models.Coordinates{Latitude: 50.450001, Longitude: 30.523399},
		models.Coordinates{Latitude: 41.9, Longitude: 12.5},
	)
}

func TestFindRoute(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	key := testKey()
	createdAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success - cached route", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(findRouteQuery).
			WithArgs("D1", 50.45, 30.5234, 41.9, 12.5).
			WillReturnRows(
				pgxmock.NewRows(routeColumns).
					AddRow("D1", 50.45, 30.5234, 41.9, 12.5, 2345.7, 1440, "_p~iF~ps|U", createdAt),
			)

		route, err := repo.FindRoute(ctx, key)

		require.NoError(t, err)
		assert.Equal(t, "D1", route.DestinationID)
		assert.InDelta(t, 2345.7, route.DistanceKm, 1e-9)
		assert.Equal(t, 1440, route.DurationMin)
		assert.Equal(t, "_p~iF~ps|U", route.Path)
		assert.Equal(t, createdAt, route.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(findRouteQuery).
			WithArgs("D1", 50.45, 30.5234, 41.9, 12.5).
			WillReturnRows(pgxmock.NewRows(routeColumns))

		route, err := repo.FindRoute(ctx, key)

		require.Nil(t, route)
		require.ErrorIs(t, err, repository.ErrRouteNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(findRouteQuery).
			WithArgs("D1", 50.45, 30.5234, 41.9, 12.5).
			WillReturnError(assert.AnError)

		route, err := repo.FindRoute(ctx, key)

		require.Nil(t, route)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to query cached route")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertRoute(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	createdAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	newRoute := func() *models.Route {
		key := testKey()
		return &models.Route{
			DestinationID: key.DestinationID,
			Origin:        models.Coordinates{Latitude: 50.450001, Longitude: 30.523399},
			Destination:   key.Destination,
			DistanceKm:    2345.7,
			DurationMin:   1440,
			Path:          "_p~iF~ps|U",
		}
	}

	t.Run("success - route inserted", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		route := newRoute()

		mock.ExpectQuery(insertRouteQuery).
			WithArgs("D1", 50.45, 30.5234, 41.9, 12.5, 2345.7, 1440, "_p~iF~ps|U").
			WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

		err = repo.InsertRoute(ctx, route)

		require.NoError(t, err)
		assert.Equal(t, createdAt, route.CreatedAt)
		assert.Equal(t, models.Coordinates{Latitude: 50.45, Longitude: 30.5234}, route.Origin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - unique violation", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(insertRouteQuery).
			WithArgs("D1", 50.45, 30.5234, 41.9, 12.5, 2345.7, 1440, "_p~iF~ps|U").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "route_cache_key"})

		err = repo.InsertRoute(ctx, newRoute())

		require.ErrorIs(t, err, repository.ErrRouteExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - other failure", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(insertRouteQuery).
			WithArgs("D1", 50.45, 30.5234, 41.9, 12.5, 2345.7, 1440, "_p~iF~ps|U").
			WillReturnError(assert.AnError)

		err = repo.InsertRoute(ctx, newRoute())

		require.ErrorIs(t, err, assert.AnError)
		require.NotErrorIs(t, err, repository.ErrRouteExists)
		require.ErrorContains(t, err, "failed to insert route")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(schemaQuery).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

		err = repository.NewRepository(mock, logger).EnsureSchema(t.Context())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(schemaQuery).WillReturnError(assert.AnError)

		err = repository.NewRepository(mock, logger).EnsureSchema(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
