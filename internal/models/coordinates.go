package models

import "math"

// coordinateScale matches the fixed precision of the polyline encoding (5 decimal digits).
const coordinateScale = 1e5

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Longitude float64 `json:"lng"` // Longitude of the geographical point.
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
}

// Rounded returns the point snapped to 5 decimal digits (~1.1m).
func (c Coordinates) Rounded() Coordinates {
	return Coordinates{
		Longitude: math.Round(c.Longitude*coordinateScale) / coordinateScale,
		Latitude:  math.Round(c.Latitude*coordinateScale) / coordinateScale,
	}
}

// Valid reports whether the point is a finite WGS84 coordinate.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
