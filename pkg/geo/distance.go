package geo

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371.0

	milesPerKm   = 0.621371
	feetPerMile  = 5280.0
	milesPerMeter = 0.000621371
)

// DistanceKm calculates the great-circle distance between two geographic
// points using the Haversine formula.
// Parameters: lat1, lon1, lat2, lon2 in degrees
// Returns: distance in kilometers
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degToRad(lat1)
	lat2Rad := degToRad(lat2)

	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// KmToMiles converts kilometers to miles.
func KmToMiles(km float64) float64 {
	return km * milesPerKm
}

// MetersToMiles converts meters to miles.
func MetersToMiles(meters float64) float64 {
	return meters * milesPerMeter
}

// FormatDistance renders a distance for display. Distances under a tenth of
// a mile are shown in feet, everything else in miles with one decimal.
func FormatDistance(km float64) string {
	miles := KmToMiles(km)
	if miles < 0.1 {
		return fmt.Sprintf("%d ft", int(math.Round(miles*feetPerMile)))
	}
	return fmt.Sprintf("%.1f mi", miles)
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
