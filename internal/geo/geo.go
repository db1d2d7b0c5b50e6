package geo

import (
	"math"

	"github.com/KirkDiggler/hideandseek/internal/models"
)

// EarthRadiusKm is the equatorial radius used for distance calculations
const EarthRadiusKm = 6378.137

// DistanceMeters returns the haversine great-circle distance between two fixes in meters.
// Accuracy is ignored and NaN inputs propagate.
func DistanceMeters(a, b models.Coords) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude) - radians(a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c * 1000
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
