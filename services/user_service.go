package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"silentsos-server/models"
	"silentsos-server/store"
	"silentsos-server/utils/errors"
)

// UserService owns profile, contacts, safe words, settings and location of
// the authenticated user. Every lookup is scoped to that user's own lists.
type UserService struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

type ProfileUpdate struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type ContactInput struct {
	Name          string `json:"name"`
	Relationship  string `json:"relationship"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ShareLocation bool   `json:"shareLocation"`
}

func (in ContactInput) validate() error {
	if in.Name == "" || in.Phone == "" {
		return errors.Validation("Name and phone are required")
	}
	return nil
}

// SafeWordInput is used for both create and partial update; nil fields are
// left unchanged on update.
type SafeWordInput struct {
	Word                   *string `json:"word"`
	NotifyEmergencyContact *bool   `json:"notifyEmergencyContact"`
	NotifyNearby           *bool   `json:"notifyNearby"`
	CallPolice             *bool   `json:"callPolice"`
	Activate               *bool   `json:"activate"`
}

type SettingsUpdate struct {
	ThreeTap      *models.ThreeTapSettings     `json:"threeTap"`
	Notifications *models.NotificationSettings `json:"notifications"`
}

type MergeMode int

const (
	// MergeNamespace replaces each provided namespace as a whole. Leaf flags
	// missing from the update become absent.
	MergeNamespace MergeMode = iota
	// MergeLeaf only overwrites the leaf flags present in the update.
	MergeLeaf
)

func NewUserService(st *store.Store, logger *zap.Logger) *UserService {
	return &UserService{store: st, logger: logger, now: time.Now}
}

func (s *UserService) view(ctx context.Context, userID string, fn func(u *models.User) error) error {
	err := s.store.View(ctx, func(tx *store.Tx) error {
		user, err := tx.Users().FindByID(userID)
		if err != nil {
			return err
		}
		return fn(user)
	})
	if err != nil {
		return errors.Internal(err, "Failed to load data")
	}
	return nil
}

func (s *UserService) update(ctx context.Context, userID string, fn func(u *models.User) error) error {
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		user, err := tx.Users().FindByID(userID)
		if err != nil {
			return err
		}
		return fn(user)
	})
	if err != nil {
		return errors.Internal(err, "Failed to save data")
	}
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var profile models.Profile
	err := s.view(ctx, userID, func(u *models.User) error {
		profile = u.Profile
		return nil
	})
	return profile, err
}

// UpdateProfile keeps the stored value for every field left out.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (models.Profile, error) {
	var profile models.Profile
	err := s.update(ctx, userID, func(u *models.User) error {
		if in.Name != nil {
			u.Profile.Name = *in.Name
		}
		if in.Phone != nil {
			u.Profile.Phone = *in.Phone
		}
		if in.Email != nil {
			u.Profile.Email = *in.Email
		}
		profile = u.Profile
		return nil
	})
	return profile, err
}

func (s *UserService) ListContacts(ctx context.Context, userID string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.view(ctx, userID, func(u *models.User) error {
		contacts = append([]models.Contact{}, u.Contacts...)
		return nil
	})
	return contacts, err
}

func (s *UserService) CreateContact(ctx context.Context, userID string, in ContactInput) (models.Contact, error) {
	if err := in.validate(); err != nil {
		return models.Contact{}, err
	}
	contact := models.Contact{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Relationship:  in.Relationship,
		Phone:         in.Phone,
		Email:         in.Email,
		ShareLocation: in.ShareLocation,
	}
	err := s.update(ctx, userID, func(u *models.User) error {
		u.Contacts = append(u.Contacts, contact)
		return nil
	})
	if err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

func findContact(u *models.User, id string) int {
	for i := range u.Contacts {
		if u.Contacts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *UserService) UpdateContact(ctx context.Context, userID, contactID string, in ContactInput) (models.Contact, error) {
	var contact models.Contact
	err := s.update(ctx, userID, func(u *models.User) error {
		i := findContact(u, contactID)
		if i < 0 {
			return errors.NotFound("Contact not found")
		}
		if err := in.validate(); err != nil {
			return err
		}
		c := &u.Contacts[i]
		c.Name = in.Name
		c.Relationship = in.Relationship
		c.Phone = in.Phone
		c.Email = in.Email
		c.ShareLocation = in.ShareLocation
		contact = *c
		return nil
	})
	return contact, err
}

func (s *UserService) DeleteContact(ctx context.Context, userID, contactID string) error {
	return s.update(ctx, userID, func(u *models.User) error {
		i := findContact(u, contactID)
		if i < 0 {
			return errors.NotFound("Contact not found")
		}
		u.Contacts = append(u.Contacts[:i], u.Contacts[i+1:]...)
		return nil
	})
}

func (s *UserService) ListSafeWords(ctx context.Context, userID string) ([]models.SafeWord, error) {
	var words []models.SafeWord
	err := s.view(ctx, userID, func(u *models.User) error {
		words = append([]models.SafeWord{}, u.SafeWords...)
		return nil
	})
	return words, err
}

// CreateSafeWord stores a new safe word. Action flags default to false and
// activate defaults to true.
func (s *UserService) CreateSafeWord(ctx context.Context, userID string, in SafeWordInput) (models.SafeWord, error) {
	if in.Word == nil || *in.Word == "" {
		return models.SafeWord{}, errors.Validation("Word is required")
	}
	word := models.SafeWord{
		ID:       uuid.New().String(),
		Word:     *in.Word,
		Activate: true,
	}
	applySafeWordInput(&word, in)
	err := s.update(ctx, userID, func(u *models.User) error {
		u.SafeWords = append(u.SafeWords, word)
		return nil
	})
	if err != nil {
		return models.SafeWord{}, err
	}
	return word, nil
}

func applySafeWordInput(w *models.SafeWord, in SafeWordInput) {
	if in.Word != nil {
		w.Word = *in.Word
	}
	if in.NotifyEmergencyContact != nil {
		w.NotifyEmergencyContact = *in.NotifyEmergencyContact
	}
	if in.NotifyNearby != nil {
		w.NotifyNearby = *in.NotifyNearby
	}
	if in.CallPolice != nil {
		w.CallPolice = *in.CallPolice
	}
	if in.Activate != nil {
		w.Activate = *in.Activate
	}
}

func findSafeWord(u *models.User, id string) int {
	for i := range u.SafeWords {
		if u.SafeWords[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *UserService) UpdateSafeWord(ctx context.Context, userID, wordID string, in SafeWordInput) (models.SafeWord, error) {
	var word models.SafeWord
	err := s.update(ctx, userID, func(u *models.User) error {
		i := findSafeWord(u, wordID)
		if i < 0 {
			return errors.NotFound("Safe word not found")
		}
		if in.Word != nil && *in.Word == "" {
			return errors.Validation("Word is required")
		}
		applySafeWordInput(&u.SafeWords[i], in)
		word = u.SafeWords[i]
		return nil
	})
	return word, err
}

func (s *UserService) DeleteSafeWord(ctx context.Context, userID, wordID string) error {
	return s.update(ctx, userID, func(u *models.User) error {
		i := findSafeWord(u, wordID)
		if i < 0 {
			return errors.NotFound("Safe word not found")
		}
		u.SafeWords = append(u.SafeWords[:i], u.SafeWords[i+1:]...)
		return nil
	})
}

func (s *UserService) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	var settings models.Settings
	err := s.view(ctx, userID, func(u *models.User) error {
		settings = u.Settings
		return nil
	})
	return settings, err
}

// UpdateSettings merges at the namespace level. Namespaces absent from the
// update are untouched.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, in SettingsUpdate, mode MergeMode) (models.Settings, error) {
	var settings models.Settings
	err := s.update(ctx, userID, func(u *models.User) error {
		if in.ThreeTap != nil {
			if mode == MergeLeaf && u.Settings.ThreeTap != nil {
				mergeThreeTap(u.Settings.ThreeTap, in.ThreeTap)
			} else {
				t := *in.ThreeTap
				u.Settings.ThreeTap = &t
			}
		}
		if in.Notifications != nil {
			if mode == MergeLeaf && u.Settings.Notifications != nil {
				mergeNotifications(u.Settings.Notifications, in.Notifications)
			} else {
				n := *in.Notifications
				u.Settings.Notifications = &n
			}
		}
		settings = u.Settings
		return nil
	})
	return settings, err
}

func mergeThreeTap(dst, src *models.ThreeTapSettings) {
	if src.NotifyEmergencyContact != nil {
		dst.NotifyEmergencyContact = src.NotifyEmergencyContact
	}
	if src.NotifyNearby != nil {
		dst.NotifyNearby = src.NotifyNearby
	}
	if src.CallPolice != nil {
		dst.CallPolice = src.CallPolice
	}
}

func mergeNotifications(dst, src *models.NotificationSettings) {
	if src.NearbyAlerts != nil {
		dst.NearbyAlerts = src.NearbyAlerts
	}
	if src.DetailedPrompt != nil {
		dst.DetailedPrompt = src.DetailedPrompt
	}
	if src.Sound != nil {
		dst.Sound = src.Sound
	}
	if src.Vibration != nil {
		dst.Vibration = src.Vibration
	}
}

// UpdateLocation overwrites the user's last known location.
func (s *UserService) UpdateLocation(ctx context.Context, userID string, lat, lng float64) (models.Location, error) {
	loc := models.Location{Lat: lat, Lng: lng, Timestamp: s.now().UnixMilli()}
	err := s.update(ctx, userID, func(u *models.User) error {
		l := loc
		u.LastLocation = &l
		return nil
	})
	if err != nil {
		return models.Location{}, err
	}
	s.logger.Debug("Location updated", zap.String("user_id", userID))
	return loc, nil
}
