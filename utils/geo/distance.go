// Package geo computes great-circle distances.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used by DistanceMiles.
const EarthRadiusMiles = 3958.8

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceMiles returns the Haversine distance between two coordinates.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// LatitudeOffset returns the latitude reached by moving the given number of
// miles due north (positive) or south from lat.
func LatitudeOffset(lat, miles float64) float64 {
	return lat + (miles/EarthRadiusMiles)*180/math.Pi
}
