package maplayer

import (
	"math"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	tileSize = 256
	// worldMeters is the Web Mercator extent of the world at the equator.
	worldMeters = 2 * math.Pi * 6378137
	// maxMercatorLat is the latitude where Web Mercator tiles end.
	maxMercatorLat = 85.05112878
)

// Viewport sources, from most to least specific.
const (
	FitVisible     = "visible"
	FitAll         = "all"
	FitDestination = "destination"
)

// ViewportOptions controls viewport fitting. Zero fields take defaults.
type ViewportOptions struct {
	Width       int     `json:"width"`        // Map width in pixels.
	Height      int     `json:"height"`       // Map height in pixels.
	Padding     int     `json:"padding"`      // Margin kept around the bounds, in pixels.
	MaxZoom     float64 `json:"max_zoom"`     // Zoom cap for a single point or a tight cluster.
	IncludeHome bool    `json:"include_home"` // Frame the home base even while markers are visible.
}

// DefaultViewportOptions returns the options used for a standard map panel.
func DefaultViewportOptions() ViewportOptions {
	return ViewportOptions{Width: 800, Height: 600, Padding: 50, MaxZoom: 14}
}

func (o ViewportOptions) withDefaults() ViewportOptions {
	def := DefaultViewportOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = def.MaxZoom
	}

	return o
}

// Viewport is the fitted map view.
type Viewport struct {
	SouthWest models.Coordinates `json:"south_west"`
	NorthEast models.Coordinates `json:"north_east"`
	Center    models.Coordinates `json:"center"`
	Zoom      float64            `json:"zoom"`
	FitTo     string             `json:"fit_to"`
	Bound     orb.Bound          `json:"-"`
}

// FitViewport frames the visible markers. When nothing is visible it falls back to all
// markers, and without any markers to the destination alone. The destination is always
// kept in view. Home is kept in view whenever nothing is visible, and also alongside
// visible markers when opts.IncludeHome is set.
func FitViewport(visible, all []Marker, destination, home models.Coordinates, opts ViewportOptions) Viewport {
	opts = opts.withDefaults()

	var markers []Marker
	fitTo := FitDestination
	switch {
	case len(visible) > 0:
		markers, fitTo = visible, FitVisible
	case len(all) > 0:
		markers, fitTo = all, FitAll
	}

	bound := orb.Bound{Min: toPoint(destination), Max: toPoint(destination)}
	for _, marker := range markers {
		bound = bound.Extend(toPoint(marker.Position))
	}
	if opts.IncludeHome || len(visible) == 0 {
		bound = bound.Extend(toPoint(home))
	}

	zoom, center := fitBound(bound, opts)

	return Viewport{
		SouthWest: fromPoint(bound.Min),
		NorthEast: fromPoint(bound.Max),
		Center:    fromPoint(center),
		Zoom:      zoom,
		FitTo:     fitTo,
		Bound:     bound,
	}
}

// fitBound returns the largest whole zoom level at which the bound fits inside the padded
// map, capped at opts.MaxZoom, and the bound's center in Web Mercator.
func fitBound(bound orb.Bound, opts ViewportOptions) (float64, orb.Point) {
	minM := project.WGS84.ToMercator(clampLat(bound.Min))
	maxM := project.WGS84.ToMercator(clampLat(bound.Max))

	center := project.Mercator.ToWGS84(orb.Point{(minM[0] + maxM[0]) / 2, (minM[1] + maxM[1]) / 2})

	zoom := opts.MaxZoom
	zoom = math.Min(zoom, zoomFor(maxM[0]-minM[0], opts.Width-2*opts.Padding))
	zoom = math.Min(zoom, zoomFor(maxM[1]-minM[1], opts.Height-2*opts.Padding))

	return math.Max(0, math.Floor(zoom)), center
}

// zoomFor returns the zoom at which a span of meters fills the given pixels.
func zoomFor(spanMeters float64, pixels int) float64 {
	if spanMeters <= 0 {
		return math.Inf(1)
	}
	if pixels <= 0 {
		return 0
	}

	return math.Log2(float64(pixels) * worldMeters / (tileSize * spanMeters))
}

func clampLat(p orb.Point) orb.Point {
	return orb.Point{p[0], math.Max(-maxMercatorLat, math.Min(maxMercatorLat, p[1]))}
}

func toPoint(c models.Coordinates) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

func fromPoint(p orb.Point) models.Coordinates {
	return models.Coordinates{Longitude: p.Lon(), Latitude: p.Lat()}
}
