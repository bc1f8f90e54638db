package store

import "silentsos-server/models"

// Document is the whole persisted state. Every transaction loads and saves
// it as one unit.
type Document struct {
	Users     []models.User     `json:"users" bson:"users"`
	SosEvents []models.SosEvent `json:"sosEvents" bson:"sosEvents"`
	Alerts    []models.Alert    `json:"alerts" bson:"alerts"`
}

func NewDocument() *Document {
	return &Document{
		Users:     []models.User{},
		SosEvents: []models.SosEvent{},
		Alerts:    []models.Alert{},
	}
}

// normalize replaces nil slices so the document always encodes empty arrays.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.SosEvents == nil {
		d.SosEvents = []models.SosEvent{}
	}
	if d.Alerts == nil {
		d.Alerts = []models.Alert{}
	}
	for i := range d.Users {
		if d.Users[i].Contacts == nil {
			d.Users[i].Contacts = []models.Contact{}
		}
		if d.Users[i].SafeWords == nil {
			d.Users[i].SafeWords = []models.SafeWord{}
		}
	}
}

// clone returns a deep copy so a memory backend never shares slices with an
// in-flight transaction.
func (d *Document) clone() *Document {
	out := &Document{
		Users:     make([]models.User, len(d.Users)),
		SosEvents: append([]models.SosEvent{}, d.SosEvents...),
		Alerts:    append([]models.Alert{}, d.Alerts...),
	}
	for i, u := range d.Users {
		u.Contacts = append([]models.Contact{}, u.Contacts...)
		u.SafeWords = append([]models.SafeWord{}, u.SafeWords...)
		u.Settings = cloneSettings(u.Settings)
		if u.LastLocation != nil {
			loc := *u.LastLocation
			u.LastLocation = &loc
		}
		out.Users[i] = u
	}
	return out
}

func cloneSettings(s models.Settings) models.Settings {
	var out models.Settings
	if s.ThreeTap != nil {
		t := models.ThreeTapSettings{
			NotifyEmergencyContact: cloneBool(s.ThreeTap.NotifyEmergencyContact),
			NotifyNearby:           cloneBool(s.ThreeTap.NotifyNearby),
			CallPolice:             cloneBool(s.ThreeTap.CallPolice),
		}
		out.ThreeTap = &t
	}
	if s.Notifications != nil {
		n := models.NotificationSettings{
			NearbyAlerts:   cloneBool(s.Notifications.NearbyAlerts),
			DetailedPrompt: cloneBool(s.Notifications.DetailedPrompt),
			Sound:          cloneBool(s.Notifications.Sound),
			Vibration:      cloneBool(s.Notifications.Vibration),
		}
		out.Notifications = &n
	}
	return out
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	return models.Bool(*v)
}
