package maplayer

import (
	"context"
	"sync"

	"github.com/UnknownOlympus/roadbook/internal/models"
)

// RouteSource fetches the route for a destination.
type RouteSource func(ctx context.Context, destination models.Destination) (*models.Route, error)

// View is the state of one map screen: the destination being viewed, its loaded
// collections and the category filter. Route loads and collections that arrive after the
// viewer has moved to another destination are discarded.
type View struct {
	mu             sync.Mutex
	home           models.Coordinates
	opts           ViewportOptions
	generation     uint64
	destination    models.Destination
	route          *models.Route
	highlights     []Highlight
	accommodations []Accommodation
	events         []Event
	visibility     Visibility
}

// NewView creates an empty view anchored at home.
func NewView(home models.Coordinates, opts ViewportOptions) *View {
	return &View{home: home, opts: opts}
}

// Navigate switches to a destination, dropping the previous route and collections.
// The category filter is kept.
func (v *View) Navigate(destination models.Destination) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	v.destination = destination
	v.route = nil
	v.highlights, v.accommodations, v.events = nil, nil, nil
}

// Destination returns the destination currently viewed.
func (v *View) Destination() models.Destination {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.destination
}

// SetCollections replaces the points of interest of the current destination. It reports
// false and drops the collections when they were fetched for a destination no longer viewed.
func (v *View) SetCollections(
	destinationID string,
	highlights []Highlight,
	accommodations []Accommodation,
	events []Event,
) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if destinationID != v.destination.ID {
		return false
	}
	v.highlights, v.accommodations, v.events = highlights, accommodations, events

	return true
}

// SetVisibility replaces the category filter.
func (v *View) SetVisibility(vis Visibility) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visibility = vis.Clone()
}

// Toggle flips a category and returns its new visibility.
func (v *View) Toggle(category string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.visibility.Toggle(category)
}

// ShowAll makes every category visible.
func (v *View) ShowAll() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visibility.ShowAll()
}

// LoadRoute fetches the route for the current destination in the background. The
// returned channel yields true when the route was applied, and false when the fetch
// failed or the view moved on before it finished.
func (v *View) LoadRoute(ctx context.Context, src RouteSource) <-chan bool {
	v.mu.Lock()
	generation, destination := v.generation, v.destination
	v.mu.Unlock()

	done := make(chan bool, 1)
	go func() {
		defer close(done)

		route, err := src(ctx, destination)

		v.mu.Lock()
		defer v.mu.Unlock()

		if err != nil || route == nil || v.generation != generation {
			done <- false
			return
		}
		v.route = route
		done <- true
	}()

	return done
}

// Layer composes the map from the current state.
func (v *View) Layer() Layer {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Build(Input{
		Home:           v.home,
		Destination:    v.destination,
		Route:          v.route,
		Highlights:     v.highlights,
		Accommodations: v.accommodations,
		Events:         v.events,
		Visibility:     v.visibility.Clone(),
		Viewport:       v.opts,
	})
}
