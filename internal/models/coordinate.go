// Package models defines the canonical records produced by the normalizer.
package models

import "math"

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InRange reports whether both components are finite and inside the
// valid latitude/longitude domain.
func (c Coordinate) InRange() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
