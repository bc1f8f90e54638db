package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silentsos-server/models"
)

func TestMongoBackend(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := "documents_test_" + uuid.New().String()
	b, err := NewMongoBackend(ctx, uri, "silentsos_test", collection)
	require.NoError(t, err)
	defer func() {
		b.collection.Drop(ctx)
		b.Close(ctx)
	}()

	doc, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Users)

	doc.Users = append(doc.Users, models.User{
		ID:           "u1",
		Email:        "a@example.com",
		Settings:     models.DefaultSettings(),
		LastLocation: &models.Location{Lat: 1, Lng: 2, Timestamp: 3},
	})
	doc.Alerts = append(doc.Alerts, models.Alert{ID: "a1", UserID: "u2", Status: models.AlertStatusNew})
	require.NoError(t, b.Save(ctx, doc))

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, models.DefaultSettings(), loaded.Users[0].Settings)
	assert.Equal(t, doc.Users[0].LastLocation, loaded.Users[0].LastLocation)
	assert.Equal(t, doc.Alerts, loaded.Alerts)
}
