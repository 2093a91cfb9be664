package api

import (
	"time"

	"github.com/UnknownOlympus/roadbook/internal/maplayer"
	"github.com/UnknownOlympus/roadbook/internal/models"
)

// routeResponse is a cached route with its path decoded for drawing.
type routeResponse struct {
	DestinationID string               `json:"destination_id"`
	Origin        models.Coordinates   `json:"origin"`
	Destination   models.Coordinates   `json:"destination"`
	DistanceKm    float64              `json:"distance_km"`
	DurationMin   int                  `json:"duration_min"`
	Summary       string               `json:"summary"`
	Path          string               `json:"path"`
	Points        []models.Coordinates `json:"points,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func newRouteResponse(route *models.Route) routeResponse {
	resp := routeResponse{
		DestinationID: route.DestinationID,
		Origin:        route.Origin,
		Destination:   route.Destination,
		DistanceKm:    route.DistanceKm,
		DurationMin:   route.DurationMin,
		Summary:       maplayer.FormatSummary(route.DistanceKm, route.DurationMin),
		Path:          route.Path,
		CreatedAt:     route.CreatedAt,
	}
	if overlay := maplayer.NewRouteOverlay(route); overlay != nil {
		resp.Points = overlay.Path
	}

	return resp
}

type warmRequest struct {
	Destinations []models.Destination `json:"destinations" binding:"required,min=1,max=1000"`
}

type mapRequest struct {
	Destination    models.Destination       `json:"destination"`
	Highlights     []maplayer.Highlight     `json:"highlights"`
	Accommodations []maplayer.Accommodation `json:"accommodations"`
	Events         []maplayer.Event         `json:"events"`
	Hidden         []string                 `json:"hidden"`
	Width          int                      `json:"width"  binding:"omitempty,min=1,max=8192"`
	Height         int                      `json:"height" binding:"omitempty,min=1,max=8192"`
	IncludeHome    bool                     `json:"include_home"`
	SkipRoute      bool                     `json:"skip_route"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
