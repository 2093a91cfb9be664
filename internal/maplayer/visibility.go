package maplayer

import (
	"slices"
	"strings"
)

// Visibility is the set of hidden categories. The zero value shows everything.
type Visibility struct {
	hidden map[string]struct{}
}

// NewVisibility returns a visibility with the given categories hidden.
func NewVisibility(hidden ...string) Visibility {
	var vis Visibility
	for _, category := range hidden {
		vis.Hide(category)
	}

	return vis
}

// Visible reports whether markers of the category are shown.
func (v Visibility) Visible(category string) bool {
	_, hidden := v.hidden[normalizeCategory(category)]
	return !hidden
}

// Hide hides a category.
func (v *Visibility) Hide(category string) {
	if v.hidden == nil {
		v.hidden = make(map[string]struct{})
	}
	v.hidden[normalizeCategory(category)] = struct{}{}
}

// Show makes a category visible again.
func (v *Visibility) Show(category string) {
	delete(v.hidden, normalizeCategory(category))
}

// Toggle flips a category and returns its new visibility.
func (v *Visibility) Toggle(category string) bool {
	if v.Visible(category) {
		v.Hide(category)
		return false
	}
	v.Show(category)

	return true
}

// ShowAll clears every hidden category.
func (v *Visibility) ShowAll() {
	v.hidden = nil
}

// Hidden returns the hidden categories in sorted order.
func (v Visibility) Hidden() []string {
	hidden := make([]string, 0, len(v.hidden))
	for category := range v.hidden {
		hidden = append(hidden, category)
	}
	slices.Sort(hidden)

	return hidden
}

// Clone returns an independent copy.
func (v Visibility) Clone() Visibility {
	return NewVisibility(v.Hidden()...)
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
