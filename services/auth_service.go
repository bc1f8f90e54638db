package services

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"

	"silentsos-server/metrics"
	"silentsos-server/models"
	"silentsos-server/sessions"
	"silentsos-server/store"
	"silentsos-server/utils/errors"
)

const (
	passwordIterations = 10000
	passwordKeyLen     = 64
	saltLen            = 16
)

type AuthService struct {
	store    *store.Store
	sessions sessions.Store
	issuer   *sessions.TokenIssuer
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func NewAuthService(st *store.Store, sess sessions.Store, issuer *sessions.TokenIssuer, m *metrics.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{store: st, sessions: sess, issuer: issuer, metrics: m, logger: logger}
}

// hashPassword derives a PBKDF2-SHA512 hash. The hex salt string itself is
// the PBKDF2 salt input so stored records stay verifiable.
func hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), passwordIterations, passwordKeyLen, sha512.New)
	return hex.EncodeToString(key)
}

func newSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func verifyPassword(password string, user *models.User) bool {
	want, err := hex.DecodeString(user.PasswordHash)
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(hashPassword(password, user.Salt))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}

// Signup creates a user with default settings and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		s.metrics.AuthAttemptsTotal.WithLabelValues("signup", "invalid").Inc()
		return nil, errors.Validation("Name, email and password are required")
	}
	salt, err := newSalt()
	if err != nil {
		return nil, errors.Internal(err, "Failed to hash password")
	}
	hash := hashPassword(password, salt)

	var user models.User
	err = s.store.Update(ctx, func(tx *store.Tx) error {
		if _, exists := tx.Users().FindByEmail(email); exists {
			return errors.Conflict("Email already registered")
		}
		user = models.User{
			ID:           uuid.New().String(),
			Email:        email,
			Salt:         salt,
			PasswordHash: hash,
			Profile:      models.Profile{Name: name, Email: email},
			Contacts:     []models.Contact{},
			SafeWords:    []models.SafeWord{},
			Settings:     models.DefaultSettings(),
		}
		tx.Users().Insert(user)
		return nil
	})
	if err != nil {
		s.metrics.AuthAttemptsTotal.WithLabelValues("signup", "failure").Inc()
		return nil, errors.Internal(err, "Failed to create user")
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()
	s.logger.Info("User signed up", zap.String("user_id", user.ID))
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login opens an additional session; earlier tokens for the user stay valid.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		s.metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, errors.Validation("Email and password are required")
	}

	var user models.User
	err := s.store.View(ctx, func(tx *store.Tx) error {
		found, ok := tx.Users().FindByEmail(email)
		if !ok || !verifyPassword(password, found) {
			return errors.ErrInvalidCredentials
		}
		user = *found
		return nil
	})
	if err != nil {
		s.metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, errors.Internal(err, "Failed to log in")
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return &AuthResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) openSession(ctx context.Context, userID string) (string, error) {
	token, err := s.issuer.Issue(userID)
	if err != nil {
		return "", errors.Internal(err, "Failed to generate token")
	}
	if err := s.sessions.Put(ctx, token, userID); err != nil {
		return "", errors.Internal(err, "Failed to store session")
	}
	return token, nil
}

// Authenticate resolves a bearer token to a user id. The token must carry a
// valid signature and be registered; the user it maps to must still exist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.ErrUnauthorized
	}
	subject, err := s.issuer.Verify(token)
	if err != nil {
		return "", errors.ErrUnauthorized
	}
	userID, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		return "", errors.Internal(err, "Failed to read session")
	}
	if !ok || userID != subject {
		return "", errors.ErrUnauthorized
	}
	err = s.store.View(ctx, func(tx *store.Tx) error {
		_, err := tx.Users().FindByID(userID)
		return err
	})
	if err != nil {
		return "", errors.Internal(err, "Failed to load user")
	}
	return userID, nil
}

// Logout revokes a single token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return errors.Internal(err, "Failed to revoke session")
	}
	return nil
}
