package routing_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

type mockGoogleClient struct {
	mock.Mock
}

func (m *mockGoogleClient) Directions(
	ctx context.Context,
	r *maps.DirectionsRequest,
) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	args := m.Called(ctx, r)
	routes, _ := args.Get(0).([]maps.Route)
	return routes, nil, args.Error(1)
}

func TestGoogleProvider_Route(t *testing.T) {
	ctx := t.Context()
	req := &maps.DirectionsRequest{
		Origin:      "50.450100,30.523400",
		Destination: "41.900000,12.500000",
		Mode:        maps.TravelModeDriving,
	}

	t.Run("api returns error", func(t *testing.T) {
		mockClient := new(mockGoogleClient)
		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		mockClient.On("Directions", ctx, req).Return(nil, assert.AnError).Once()

		_, err := provider.Route(ctx, home, rome)

		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("zero results status", func(t *testing.T) {
		mockClient := new(mockGoogleClient)
		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		mockClient.On("Directions", ctx, req).Return(nil, errors.New("maps: ZERO_RESULTS - ")).Once()

		_, err := provider.Route(ctx, home, rome)

		require.ErrorIs(t, err, routing.ErrNoRoute)
		mockClient.AssertExpectations(t)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		mockClient := new(mockGoogleClient)
		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		mockClient.On("Directions", ctx, req).Return(nil, nil).Once()

		directions, err := provider.Route(ctx, home, rome)

		require.Nil(t, directions)
		require.ErrorIs(t, err, routing.ErrNoRoute)
		mockClient.AssertExpectations(t)
	})

	t.Run("successful route sums legs", func(t *testing.T) {
		mockClient := new(mockGoogleClient)
		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		response := []maps.Route{{
			OverviewPolyline: maps.Polyline{Points: "_p~iF~ps|U"},
			Legs: []*maps.Leg{
				{Distance: maps.Distance{Meters: 1200}, Duration: 2 * time.Minute},
				{Distance: maps.Distance{Meters: 800}, Duration: 90 * time.Second},
			},
		}}
		mockClient.On("Directions", ctx, req).Return(response, nil).Once()

		directions, err := provider.Route(ctx, home, rome)

		require.NoError(t, err)
		assert.InEpsilon(t, 2000.0, directions.DistanceMeters, 0.0001)
		assert.InEpsilon(t, 210.0, directions.DurationSeconds, 0.0001)
		assert.Equal(t, "_p~iF~ps|U", directions.Geometry)
		mockClient.AssertExpectations(t)
	})

	t.Run("route without polyline", func(t *testing.T) {
		mockClient := new(mockGoogleClient)
		provider := routing.NewGoogleProvider(mockClient, slog.Default())
		mockClient.On("Directions", ctx, req).Return([]maps.Route{{}}, nil).Once()

		_, err := provider.Route(ctx, home, rome)

		require.ErrorIs(t, err, routing.ErrInvalidResponse)
	})
}
