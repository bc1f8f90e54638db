package services

import (
	"silentsos-server/models"
	"silentsos-server/utils/geo"
)

// DefaultNearbyRadiusMiles is the fan-out radius for proximity alerts.
const DefaultNearbyRadiusMiles = 1.0

type GeoService struct {
	radiusMiles float64
}

type NearbyUser struct {
	User     *models.User
	Distance float64 // miles
}

func NewGeoService(radiusMiles float64) *GeoService {
	if radiusMiles <= 0 {
		radiusMiles = DefaultNearbyRadiusMiles
	}
	return &GeoService{radiusMiles: radiusMiles}
}

func (s *GeoService) RadiusMiles() float64 {
	return s.radiusMiles
}

// FindNearbyUsers returns the users within the radius of (lat, lng), in the
// order given. The sender, users without a known location and users who
// turned off nearby alerts are skipped.
func (s *GeoService) FindNearbyUsers(senderID string, lat, lng float64, users []*models.User) []NearbyUser {
	var nearby []NearbyUser
	for _, u := range users {
		if u.ID == senderID {
			continue
		}
		if u.LastLocation == nil {
			continue
		}
		if !u.Settings.AcceptsNearbyAlerts() {
			continue
		}
		d := geo.DistanceMiles(lat, lng, u.LastLocation.Lat, u.LastLocation.Lng)
		if d <= s.radiusMiles {
			nearby = append(nearby, NearbyUser{User: u, Distance: d})
		}
	}
	return nearby
}
