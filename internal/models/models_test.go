package models_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCoordinates_Rounded(t *testing.T) {
	t.Parallel()

	got := models.Coordinates{Latitude: 41.9000049, Longitude: 12.500006}.Rounded()

	assert.InDelta(t, 41.9, got.Latitude, 1e-9)
	assert.InDelta(t, 12.50001, got.Longitude, 1e-9)
}

func TestCoordinates_Valid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		point models.Coordinates
		want  bool
	}{
		{name: "rome", point: models.Coordinates{Latitude: 41.9, Longitude: 12.5}, want: true},
		{name: "poles and antimeridian", point: models.Coordinates{Latitude: -90, Longitude: 180}, want: true},
		{name: "latitude out of range", point: models.Coordinates{Latitude: 90.1, Longitude: 0}},
		{name: "longitude out of range", point: models.Coordinates{Latitude: 0, Longitude: -180.5}},
		{name: "nan", point: models.Coordinates{Latitude: math.NaN(), Longitude: 0}},
		{name: "inf", point: models.Coordinates{Latitude: 0, Longitude: math.Inf(1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.point.Valid())
		})
	}
}

func TestRouteKey(t *testing.T) {
	t.Parallel()

	home := models.Coordinates{Latitude: 45, Longitude: 9}
	key := models.NewRouteKey("D1", home, models.Coordinates{Latitude: 41.9000001, Longitude: 12.5})

	assert.Equal(t, "D1:45.00000,9.00000:41.90000,12.50000", key.String())

	route := models.Route{DestinationID: "D1", Origin: home, Destination: models.Coordinates{Latitude: 41.9, Longitude: 12.5}}
	assert.Equal(t, key, route.Key())

	moved := models.NewRouteKey("D1", home, models.Coordinates{Latitude: 41.91, Longitude: 12.5})
	assert.NotEqual(t, key, moved)
}

func TestRounding(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2345.7, models.RoundDistanceKm(2345678), 1e-9)
	assert.InDelta(t, 0.0, models.RoundDistanceKm(40), 1e-9)
	assert.Equal(t, 1441, models.RoundDurationMin(86460))
	assert.Equal(t, 1, models.RoundDurationMin(89))
	assert.Equal(t, 2, models.RoundDurationMin(90))
}

func TestDestination_Coordinates(t *testing.T) {
	t.Parallel()

	dest := models.Destination{ID: "D1", Latitude: 41.9, Longitude: 12.5}

	assert.Equal(t, models.Coordinates{Latitude: 41.9, Longitude: 12.5}, dest.Coordinates())
}
