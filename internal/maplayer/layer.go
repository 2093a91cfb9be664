package maplayer

import (
	"fmt"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/UnknownOlympus/roadbook/internal/polyline"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Input is everything a map render needs.
type Input struct {
	Home           models.Coordinates
	Destination    models.Destination
	Route          *models.Route // nil when no route is available
	Highlights     []Highlight
	Accommodations []Accommodation
	Events         []Event
	Visibility     Visibility
	Viewport       ViewportOptions
}

// Pin is a fixed labeled point.
type Pin struct {
	Label    string             `json:"label"`
	Position models.Coordinates `json:"position"`
}

// RouteOverlay is the decoded route line with its readout.
type RouteOverlay struct {
	Path        []models.Coordinates `json:"path"`
	DistanceKm  float64              `json:"distance_km"`
	DurationMin int                  `json:"duration_min"`
	Summary     string               `json:"summary"`
}

// PlacedMarker is a visible marker with its popup.
type PlacedMarker struct {
	Marker
	Popup Popup `json:"popup"`
}

// Layer is a fully composed map.
type Layer struct {
	Home        Pin            `json:"home"`
	Destination Pin            `json:"destination"`
	Route       *RouteOverlay  `json:"route,omitempty"`
	Markers     []PlacedMarker `json:"markers"`
	Legend      []LegendEntry  `json:"legend"`
	Hidden      []string       `json:"hidden"`
	Viewport    Viewport       `json:"viewport"`
}

// Build composes the map. A missing route or an undecodable path only drops the
// route overlay; the rest of the map is always rendered.
func Build(in Input) Layer {
	all := Normalize(Collect(in.Highlights, in.Accommodations, in.Events)...)
	visible := FilterVisible(all, in.Visibility)

	placed := make([]PlacedMarker, 0, len(visible))
	for _, marker := range visible {
		placed = append(placed, PlacedMarker{Marker: marker, Popup: PopupFor(marker.Source)})
	}

	destinationName := in.Destination.Name
	if destinationName == "" {
		destinationName = in.Destination.ID
	}

	return Layer{
		Home:        Pin{Label: "Home", Position: in.Home},
		Destination: Pin{Label: destinationName, Position: in.Destination.Coordinates()},
		Route:       NewRouteOverlay(in.Route),
		Markers:     placed,
		Legend:      Legend(all, in.Visibility),
		Hidden:      in.Visibility.Hidden(),
		Viewport:    FitViewport(visible, all, in.Destination.Coordinates(), in.Home, in.Viewport),
	}
}

// NewRouteOverlay decodes the route path. It returns nil for a missing route or a
// path that is empty or malformed.
func NewRouteOverlay(route *models.Route) *RouteOverlay {
	if route == nil || route.Path == "" {
		return nil
	}

	path, err := polyline.Decode(route.Path)
	if err != nil || len(path) == 0 {
		return nil
	}

	return &RouteOverlay{
		Path:        path,
		DistanceKm:  route.DistanceKm,
		DurationMin: route.DurationMin,
		Summary:     FormatSummary(route.DistanceKm, route.DurationMin),
	}
}

// FormatSummary renders a distance and duration readout such as "1234.5 km, 20 h 41 min".
func FormatSummary(distanceKm float64, durationMin int) string {
	const minutesPerHour = 60
	hours, minutes := durationMin/minutesPerHour, durationMin%minutesPerHour

	duration := fmt.Sprintf("%d min", minutes)
	if hours > 0 {
		duration = fmt.Sprintf("%d h %d min", hours, minutes)
	}

	return fmt.Sprintf("%.1f km, %s", distanceKm, duration)
}

// FeatureCollection renders the layer as GeoJSON: the two pins, the route line and the
// visible markers, with the viewport bounds as the collection bbox.
func (l Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.BBox = geojson.NewBBox(l.Viewport.Bound)

	home := geojson.NewFeature(toPoint(l.Home.Position))
	home.Properties["role"] = "home"
	home.Properties["label"] = l.Home.Label
	fc.Append(home)

	destination := geojson.NewFeature(toPoint(l.Destination.Position))
	destination.Properties["role"] = "destination"
	destination.Properties["label"] = l.Destination.Label
	fc.Append(destination)

	if l.Route != nil {
		line := make(orb.LineString, 0, len(l.Route.Path))
		for _, point := range l.Route.Path {
			line = append(line, toPoint(point))
		}
		route := geojson.NewFeature(line)
		route.Properties["role"] = "route"
		route.Properties["distance_km"] = l.Route.DistanceKm
		route.Properties["duration_min"] = l.Route.DurationMin
		route.Properties["summary"] = l.Route.Summary
		fc.Append(route)
	}

	for _, marker := range l.Markers {
		feature := geojson.NewFeature(toPoint(marker.Position))
		feature.ID = marker.ID
		feature.Properties["role"] = "marker"
		feature.Properties["kind"] = string(marker.Kind)
		feature.Properties["category"] = marker.Category
		feature.Properties["title"] = marker.Popup.Title
		feature.Properties["popup"] = marker.Popup.Fields
		fc.Append(feature)
	}

	return fc
}
