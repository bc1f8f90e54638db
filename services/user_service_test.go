package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silentsos-server/models"
	"silentsos-server/utils/errors"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfileKeepsOmittedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res := env.signup(t, "ann")

	profile, err := env.users.UpdateProfile(ctx, res.User.ID, ProfileUpdate{Phone: strPtr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, models.Profile{Name: "ann", Phone: "555-0100", Email: "ann@example.com"}, profile)

	got, err := env.users.GetProfile(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	_, err = env.users.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestContactLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "ann").User.ID

	_, err := env.users.CreateContact(ctx, userID, ContactInput{Name: "Mum"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	mum, err := env.users.CreateContact(ctx, userID, ContactInput{Name: "Mum", Phone: "1", ShareLocation: true})
	require.NoError(t, err)
	dad, err := env.users.CreateContact(ctx, userID, ContactInput{Name: "Dad", Phone: "2", Relationship: "father"})
	require.NoError(t, err)
	assert.NotEqual(t, mum.ID, dad.ID)

	updated, err := env.users.UpdateContact(ctx, userID, mum.ID, ContactInput{Name: "Mother", Phone: "3"})
	require.NoError(t, err)
	assert.Equal(t, mum.ID, updated.ID)
	assert.Equal(t, "Mother", updated.Name)
	assert.False(t, updated.ShareLocation)

	_, err = env.users.UpdateContact(ctx, userID, mum.ID, ContactInput{Name: "Mother"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	_, err = env.users.UpdateContact(ctx, userID, "missing", ContactInput{Name: "x", Phone: "y"})
	assert.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, env.users.DeleteContact(ctx, userID, mum.ID))
	contacts, err := env.users.ListContacts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, dad.ID, contacts[0].ID)
}

func TestDeleteContactOfAnotherUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ann := env.signup(t, "ann").User.ID
	bob := env.signup(t, "bob").User.ID

	bobsContact, err := env.users.CreateContact(ctx, bob, ContactInput{Name: "Sis", Phone: "9"})
	require.NoError(t, err)

	err = env.users.DeleteContact(ctx, ann, bobsContact.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	contacts, err := env.users.ListContacts(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []models.Contact{bobsContact}, contacts)
}

func TestSafeWordLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "ann").User.ID

	_, err := env.users.CreateSafeWord(ctx, userID, SafeWordInput{})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	word, err := env.users.CreateSafeWord(ctx, userID, SafeWordInput{Word: strPtr("pineapple"), CallPolice: models.Bool(true)})
	require.NoError(t, err)
	assert.True(t, word.Activate, "activate defaults to true")
	assert.True(t, word.CallPolice)
	assert.False(t, word.NotifyNearby)

	updated, err := env.users.UpdateSafeWord(ctx, userID, word.ID, SafeWordInput{Activate: models.Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, "pineapple", updated.Word)
	assert.True(t, updated.CallPolice)
	assert.False(t, updated.Activate)

	_, err = env.users.UpdateSafeWord(ctx, userID, word.ID, SafeWordInput{Word: strPtr("")})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	_, err = env.users.UpdateSafeWord(ctx, userID, "missing", SafeWordInput{})
	assert.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, env.users.DeleteSafeWord(ctx, userID, word.ID))
	assert.ErrorIs(t, env.users.DeleteSafeWord(ctx, userID, word.ID), errors.ErrNotFound)
	words, err := env.users.ListSafeWords(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, words)
}

// A namespace update replaces the whole nested object: flags left out of the
// update become absent rather than keeping their previous value.
func TestUpdateSettingsReplacesNamespace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "ann").User.ID

	settings, err := env.users.UpdateSettings(ctx, userID, SettingsUpdate{
		ThreeTap: &models.ThreeTapSettings{CallPolice: models.Bool(false)},
	}, MergeNamespace)
	require.NoError(t, err)

	require.NotNil(t, settings.ThreeTap)
	assert.False(t, *settings.ThreeTap.CallPolice)
	assert.Nil(t, settings.ThreeTap.NotifyNearby)
	assert.Nil(t, settings.ThreeTap.NotifyEmergencyContact)
	// Untouched namespace is preserved.
	assert.Equal(t, models.DefaultSettings().Notifications, settings.Notifications)

	// Absent flags still resolve to enabled.
	assert.Equal(t, models.SosActions{NotifyNearby: true, NotifyEmergencyContact: true, CallPolice: false},
		settings.ThreeTapActions())
}

func TestUpdateSettingsLeafMerge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "ann").User.ID

	settings, err := env.users.UpdateSettings(ctx, userID, SettingsUpdate{
		Notifications: &models.NotificationSettings{Sound: models.Bool(true)},
	}, MergeLeaf)
	require.NoError(t, err)

	n := settings.Notifications
	assert.True(t, *n.Sound)
	assert.True(t, *n.NearbyAlerts)
	assert.True(t, *n.Vibration)
	assert.False(t, *n.DetailedPrompt)

	got, err := env.users.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}

func TestUpdateLocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "ann").User.ID

	loc, err := env.users.UpdateLocation(ctx, userID, 1.5, -2.5)
	require.NoError(t, err)
	assert.Equal(t, models.Location{Lat: 1.5, Lng: -2.5, Timestamp: 1700000000000}, loc)
	assert.Equal(t, &loc, env.user(t, userID).LastLocation)

	_, err = env.users.UpdateLocation(ctx, "missing", 0, 0)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
