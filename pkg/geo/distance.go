// Package geo provides great-circle distance math used for proximity
// filtering of resources.
package geo

import "math"

// earthRadiusMiles is the mean Earth radius in miles.
const earthRadiusMiles = 3958.8

// Distance returns the great-circle distance in miles between two
// coordinate pairs using the Haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// IsWithinDistance reports whether two points are at most maxMiles apart.
func IsWithinDistance(lat1, lon1, lat2, lon2, maxMiles float64) bool {
	return Distance(lat1, lon1, lat2, lon2) <= maxMiles
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
