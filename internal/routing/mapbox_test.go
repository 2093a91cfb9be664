package routing_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/roadbook/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapboxProvider_Route(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("successful route", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "api.mapbox.com", req.URL.Host)
				assert.Equal(t, "/directions/v5/mapbox/driving/30.523400,50.450100;12.500000,41.900000", req.URL.Path)
				assert.Equal(t, "test-token", req.URL.Query().Get("access_token"))
				assert.Equal(t, "polyline", req.URL.Query().Get("geometries"))
				assert.Equal(t, "full", req.URL.Query().Get("overview"))

				return jsonResponse(http.StatusOK,
					`{"code":"Ok","routes":[{"distance":1000,"duration":60,"geometry":"_p~iF~ps|U"}]}`), nil
			},
		}

		provider := routing.NewMapboxProviderWithClient(
			mockClient, routing.MapboxBaseURL, "test-token", unlimited(), logger,
		)
		directions, err := provider.Route(ctx, home, rome)

		require.NoError(t, err)
		assert.InEpsilon(t, 1000.0, directions.DistanceMeters, 0.0001)
		assert.InEpsilon(t, 60.0, directions.DurationSeconds, 0.0001)
		assert.Equal(t, "_p~iF~ps|U", directions.Geometry)
	})

	t.Run("empty token", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("request must not be sent without a token")
				return nil, nil
			},
		}

		provider := routing.NewMapboxProviderWithClient(mockClient, routing.MapboxBaseURL, "", unlimited(), logger)
		_, err := provider.Route(ctx, home, rome)

		require.ErrorIs(t, err, routing.ErrMapboxEmptyToken)
	})

	t.Run("rejected token", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusUnauthorized, `{"message":"Not Authorized - Invalid Token"}`), nil
			},
		}

		provider := routing.NewMapboxProviderWithClient(mockClient, routing.MapboxBaseURL, "bad", unlimited(), logger)
		_, err := provider.Route(ctx, home, rome)

		require.ErrorIs(t, err, routing.ErrUnauthorized)
	})

	t.Run("no route", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"code":"NoRoute","routes":[]}`), nil
			},
		}

		provider := routing.NewMapboxProviderWithClient(mockClient, routing.MapboxBaseURL, "t", unlimited(), logger)
		_, err := provider.Route(ctx, home, rome)

		require.ErrorIs(t, err, routing.ErrNoRoute)
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `oops`), nil
			},
		}

		provider := routing.NewMapboxProviderWithClient(mockClient, routing.MapboxBaseURL, "t", unlimited(), logger)
		_, err := provider.Route(ctx, home, rome)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "mapbox API returned status 500")
	})
}
