package service

import (
	"math"

	"nychousing-backend/models"
)

// EarthRadiusMiles is the mean Earth radius used for great-circle distances
const EarthRadiusMiles = 3959.0

// Distance returns the great-circle distance in miles between two points
// given in degrees, using the Haversine formula.
func Distance(a, b models.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lng1 := a.Lng * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	lng2 := b.Lng * math.Pi / 180.0

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}
