package directory

import (
	"math"

	"santdir/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(a, b models.Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
