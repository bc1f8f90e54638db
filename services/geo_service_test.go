package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silentsos-server/models"
	"silentsos-server/utils/geo"
)

func TestFindNearbyUsers(t *testing.T) {
	g := NewGeoService(0)
	require.Equal(t, DefaultNearbyRadiusMiles, g.RadiusMiles())

	optedOut := models.DefaultSettings()
	optedOut.Notifications.NearbyAlerts = models.Bool(false)

	users := []*models.User{
		{ID: "sender", LastLocation: &models.Location{}},
		{ID: "close", LastLocation: &models.Location{Lat: geo.LatitudeOffset(0, 0.25)}},
		{ID: "edge", LastLocation: &models.Location{Lat: geo.LatitudeOffset(0, 0.999)}},
		{ID: "far", LastLocation: &models.Location{Lat: geo.LatitudeOffset(0, 1.5)}},
		{ID: "unknown"},
		{ID: "optedout", LastLocation: &models.Location{}, Settings: optedOut},
		{ID: "nonotifications", LastLocation: &models.Location{}, Settings: models.Settings{}},
	}

	nearby := g.FindNearbyUsers("sender", 0, 0, users)

	var ids []string
	for _, n := range nearby {
		ids = append(ids, n.User.ID)
	}
	assert.Equal(t, []string{"close", "edge", "nonotifications"}, ids)
	assert.InDelta(t, 0.25, nearby[0].Distance, 1e-9)
}

func TestFindNearbyUsersCustomRadius(t *testing.T) {
	g := NewGeoService(2)
	users := []*models.User{
		{ID: "far", LastLocation: &models.Location{Lat: geo.LatitudeOffset(0, 1.5)}},
	}
	assert.Len(t, g.FindNearbyUsers("sender", 0, 0, users), 1)
}
