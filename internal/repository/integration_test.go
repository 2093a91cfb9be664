//go:build integration

package repository_test

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/UnknownOlympus/roadbook/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupPostgres(t *testing.T) *repository.Repository {
	t.Helper()
	ctx := t.Context()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("roadbook"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "failed to start PostgreSQL container")

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := repository.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := repository.NewRepository(pool, slog.Default())
	require.NoError(t, repo.EnsureSchema(ctx))
	// Second call must be a no-op.
	require.NoError(t, repo.EnsureSchema(ctx))

	return repo
}

func TestRepository_Integration(t *testing.T) {
	repo := setupPostgres(t)
	ctx := t.Context()

	home := models.Coordinates{Latitude: 50.4501, Longitude: 30.5234}
	rome := models.Coordinates{Latitude: 41.9, Longitude: 12.5}
	key := models.NewRouteKey("D1", home, rome)

	_, err := repo.FindRoute(ctx, key)
	require.ErrorIs(t, err, repository.ErrRouteNotFound)

	route := &models.Route{
		DestinationID: "D1",
		Origin:        home,
		Destination:   rome,
		DistanceKm:    2345.7,
		DurationMin:   1440,
		Path:          "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
	}
	require.NoError(t, repo.InsertRoute(ctx, route))
	assert.False(t, route.CreatedAt.IsZero())

	stored, err := repo.FindRoute(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, route.Path, stored.Path)
	assert.InDelta(t, 2345.7, stored.DistanceKm, 1e-9)
	assert.Equal(t, 1440, stored.DurationMin)

	t.Run("edited destination gets its own row", func(t *testing.T) {
		moved := models.Coordinates{Latitude: 41.90271, Longitude: 12.49623}
		_, err := repo.FindRoute(ctx, models.NewRouteKey("D1", home, moved))
		require.ErrorIs(t, err, repository.ErrRouteNotFound)
	})

	t.Run("concurrent inserts store one row", func(t *testing.T) {
		const writers = 8
		var wg sync.WaitGroup
		results := make(chan error, writers)

		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- repo.InsertRoute(ctx, &models.Route{
					DestinationID: "D2",
					Origin:        home,
					Destination:   rome,
					DistanceKm:    1,
					DurationMin:   1,
					Path:          "??",
				})
			}()
		}
		wg.Wait()
		close(results)

		inserted := 0
		for err := range results {
			if err == nil {
				inserted++
				continue
			}
			require.ErrorIs(t, err, repository.ErrRouteExists)
		}
		assert.Equal(t, 1, inserted)
	})
}
