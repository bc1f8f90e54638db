package store

import (
	"silentsos-server/models"
	"silentsos-server/utils/errors"
)

type UserRepository interface {
	// FindByID returns a pointer into the transaction's document; mutations
	// through it are saved when the transaction commits.
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, bool)
	Insert(user models.User)
	All() []*models.User
}

type SosEventRepository interface {
	Append(event models.SosEvent)
	ListByUser(userID string) []models.SosEvent
}

type AlertRepository interface {
	Append(alert models.Alert)
	// TakeNew returns the recipient's alerts in status "new" and marks them
	// delivered.
	TakeNew(userID string) []models.Alert
	ListByUser(userID string) []models.Alert
}

// Tx is one load/mutate/save unit over the document.
type Tx struct {
	doc *Document
}

func (tx *Tx) Users() UserRepository         { return userRepo{tx.doc} }
func (tx *Tx) SosEvents() SosEventRepository { return sosEventRepo{tx.doc} }
func (tx *Tx) Alerts() AlertRepository       { return alertRepo{tx.doc} }

type userRepo struct{ doc *Document }

func (r userRepo) FindByID(id string) (*models.User, error) {
	for i := range r.doc.Users {
		if r.doc.Users[i].ID == id {
			return &r.doc.Users[i], nil
		}
	}
	return nil, errors.ErrUserNotFound
}

// FindByEmail matches the stored email exactly, case included.
func (r userRepo) FindByEmail(email string) (*models.User, bool) {
	for i := range r.doc.Users {
		if r.doc.Users[i].Email == email {
			return &r.doc.Users[i], true
		}
	}
	return nil, false
}

func (r userRepo) Insert(user models.User) {
	if user.Contacts == nil {
		user.Contacts = []models.Contact{}
	}
	if user.SafeWords == nil {
		user.SafeWords = []models.SafeWord{}
	}
	r.doc.Users = append(r.doc.Users, user)
}

func (r userRepo) All() []*models.User {
	out := make([]*models.User, len(r.doc.Users))
	for i := range r.doc.Users {
		out[i] = &r.doc.Users[i]
	}
	return out
}

type sosEventRepo struct{ doc *Document }

func (r sosEventRepo) Append(event models.SosEvent) {
	r.doc.SosEvents = append(r.doc.SosEvents, event)
}

func (r sosEventRepo) ListByUser(userID string) []models.SosEvent {
	out := []models.SosEvent{}
	for _, e := range r.doc.SosEvents {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

type alertRepo struct{ doc *Document }

func (r alertRepo) Append(alert models.Alert) {
	r.doc.Alerts = append(r.doc.Alerts, alert)
}

func (r alertRepo) TakeNew(userID string) []models.Alert {
	out := []models.Alert{}
	for i := range r.doc.Alerts {
		a := &r.doc.Alerts[i]
		if a.UserID != userID || a.Status != models.AlertStatusNew {
			continue
		}
		a.Status = models.AlertStatusDelivered
		out = append(out, *a)
	}
	return out
}

func (r alertRepo) ListByUser(userID string) []models.Alert {
	out := []models.Alert{}
	for _, a := range r.doc.Alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}
