package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silentsos-server/models"
)

func TestFetchIsReadOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := env.signup(t, "ann").User.ID
	recipient := env.signup(t, "bob").User.ID
	env.locate(t, recipient, 1.0001, 1.0001)

	_, err := env.sos.Dispatch(ctx, sender, DispatchInput{Lat: 1, Lng: 1})
	require.NoError(t, err)
	_, err = env.sos.Dispatch(ctx, sender, DispatchInput{Lat: 1, Lng: 1, Type: models.TriggerThreeTap})
	require.NoError(t, err)

	first, err := env.alerts.Fetch(ctx, recipient)
	require.NoError(t, err)
	require.Len(t, first, 2)
	for _, a := range first {
		assert.Equal(t, sender, a.FromUserID)
		assert.Less(t, a.DistanceMiles, 1.0)
		assert.Equal(t, models.AlertStatusDelivered, a.Status)
	}

	second, err := env.alerts.Fetch(ctx, recipient)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.NotNil(t, second)
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.AlertsDeliveredTotal))

	// A new dispatch refills the inbox.
	_, err = env.sos.Dispatch(ctx, sender, DispatchInput{Lat: 1, Lng: 1})
	require.NoError(t, err)
	third, err := env.alerts.Fetch(ctx, recipient)
	require.NoError(t, err)
	assert.Len(t, third, 1)
}

func TestFetchOnlyReturnsOwnAlerts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := env.signup(t, "ann").User.ID
	bob := env.signup(t, "bob").User.ID
	carol := env.signup(t, "carol").User.ID
	env.locate(t, bob, 0, 0)

	_, err := env.sos.Dispatch(ctx, sender, DispatchInput{})
	require.NoError(t, err)

	carolsAlerts, err := env.alerts.Fetch(ctx, carol)
	require.NoError(t, err)
	assert.Empty(t, carolsAlerts)

	bobsAlerts, err := env.alerts.Fetch(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, bobsAlerts, 1)
}

func TestHistoryOnlyReturnsOwnEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ann := env.signup(t, "ann").User.ID
	bob := env.signup(t, "bob").User.ID

	_, err := env.sos.Dispatch(ctx, ann, DispatchInput{LocationText: "first"})
	require.NoError(t, err)
	_, err = env.sos.Dispatch(ctx, bob, DispatchInput{})
	require.NoError(t, err)
	_, err = env.sos.Dispatch(ctx, ann, DispatchInput{LocationText: "second"})
	require.NoError(t, err)

	history, err := env.alerts.History(ctx, ann)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].LocationText)
	assert.Equal(t, "second", history[1].LocationText)

	empty, err := env.alerts.History(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
