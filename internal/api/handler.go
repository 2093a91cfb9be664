package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/roadbook/internal/maplayer"
	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/UnknownOlympus/roadbook/internal/service"
	"github.com/gin-gonic/gin"
)

// RouteService is the route cache the handlers serve from.
type RouteService interface {
	GetRoute(ctx context.Context, destinationID string, lat, lng float64) (*models.Route, error)
	WarmRoutes(ctx context.Context, destinations []models.Destination) service.WarmReport
	Home() models.Coordinates
}

// Handler serves the route and map endpoints.
type Handler struct {
	log      *slog.Logger
	routes   RouteService
	viewport maplayer.ViewportOptions
}

// NewHandler creates a new Handler. viewport holds the server-side map defaults.
func NewHandler(log *slog.Logger, routes RouteService, viewport maplayer.ViewportOptions) *Handler {
	return &Handler{log: log, routes: routes, viewport: viewport}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/routes/:destinationID", h.GetRoute)
		v1.POST("/routes/warm", h.WarmRoutes)
		v1.POST("/map", h.BuildMap)
	}
}

// GetRoute returns the cached route to a destination, computing it on first request.
// 204 means no route is available right now.
func (h *Handler) GetRoute(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		h.badRequest(c, "lat and lng query parameters must be numbers")
		return
	}

	route, err := h.routes.GetRoute(c.Request.Context(), c.Param("destinationID"), lat, lng)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, newRouteResponse(route))
	case errors.Is(err, service.ErrInvalidRequest):
		h.badRequest(c, err.Error())
	case errors.Is(err, service.ErrRouteUnavailable):
		c.Status(http.StatusNoContent)
	default:
		h.log.ErrorContext(c.Request.Context(), "Failed to get route", "error", err,
			"request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:     "failed to get route",
			RequestID: c.GetString(requestIDKey),
		})
	}
}

// WarmRoutes resolves routes for a batch of destinations.
func (h *Handler) WarmRoutes(c *gin.Context) {
	var req warmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	report := h.routes.WarmRoutes(c.Request.Context(), req.Destinations)

	c.JSON(http.StatusOK, report)
}

// BuildMap composes the map layer for a destination. The route is optional
// enrichment: when it is unavailable the map is returned without it.
func (h *Handler) BuildMap(c *gin.Context) {
	var req mapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	if req.Destination.ID == "" || !req.Destination.Coordinates().Valid() {
		h.badRequest(c, "destination needs an id and valid coordinates")
		return
	}

	opts := h.viewport
	opts.Width, opts.Height, opts.IncludeHome = req.Width, req.Height, req.IncludeHome

	view := maplayer.NewView(h.routes.Home(), opts)
	view.Navigate(req.Destination)
	view.SetCollections(req.Destination.ID, req.Highlights, req.Accommodations, req.Events)
	view.SetVisibility(maplayer.NewVisibility(req.Hidden...))
	if !req.SkipRoute {
		<-view.LoadRoute(c.Request.Context(), h.loadRoute)
	}

	layer := view.Layer()

	if c.Query("format") == "geojson" {
		c.JSON(http.StatusOK, layer.FeatureCollection())
		return
	}

	c.JSON(http.StatusOK, layer)
}

// loadRoute feeds the cached route into a map view. Failures only drop the overlay.
func (h *Handler) loadRoute(ctx context.Context, dest models.Destination) (*models.Route, error) {
	route, err := h.routes.GetRoute(ctx, dest.ID, dest.Latitude, dest.Longitude)
	if err != nil {
		h.log.DebugContext(ctx, "Rendering map without route", "destination", dest.ID, "error", err)
	}

	return route, err
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg, RequestID: c.GetString(requestIDKey)})
}
