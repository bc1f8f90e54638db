package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"silentsos-server/metrics"
	"silentsos-server/models"
	"silentsos-server/sessions"
	"silentsos-server/store"
)

type testEnv struct {
	store    *store.Store
	sessions *sessions.MemoryStore
	metrics  *metrics.Metrics
	auth     *AuthService
	users    *UserService
	sos      *SOSService
	alerts   *AlertService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	st := store.New(store.NewMemoryBackend(), logger)
	sess := sessions.NewMemoryStore()
	m := metrics.New(nil)
	env := &testEnv{
		store:    st,
		sessions: sess,
		metrics:  m,
		auth:     NewAuthService(st, sess, sessions.NewTokenIssuer("test-secret"), m, logger),
		users:    NewUserService(st, logger),
		sos:      NewSOSService(st, NewGeoService(DefaultNearbyRadiusMiles), m, logger),
		alerts:   NewAlertService(st, m, logger),
	}
	fixed := time.UnixMilli(1700000000000)
	env.users.now = func() time.Time { return fixed }
	env.sos.now = func() time.Time { return fixed }
	return env
}

func (e *testEnv) signup(t *testing.T, name string) *AuthResult {
	t.Helper()
	res, err := e.auth.Signup(context.Background(), name, name+"@example.com", "password-"+name)
	require.NoError(t, err)
	return res
}

func (e *testEnv) locate(t *testing.T, userID string, lat, lng float64) {
	t.Helper()
	_, err := e.users.UpdateLocation(context.Background(), userID, lat, lng)
	require.NoError(t, err)
}

func (e *testEnv) user(t *testing.T, userID string) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, e.store.View(context.Background(), func(tx *store.Tx) error {
		found, err := tx.Users().FindByID(userID)
		if err != nil {
			return err
		}
		u = *found
		return nil
	}))
	return u
}
