package models

// Leaf flags are pointers because a namespace update replaces the whole
// nested object: flags the client leaves out are stored as absent, not false.
type Settings struct {
	ThreeTap      *ThreeTapSettings     `json:"threeTap,omitempty" bson:"threeTap,omitempty"`
	Notifications *NotificationSettings `json:"notifications,omitempty" bson:"notifications,omitempty"`
}

type ThreeTapSettings struct {
	NotifyEmergencyContact *bool `json:"notifyEmergencyContact,omitempty" bson:"notifyEmergencyContact,omitempty"`
	NotifyNearby           *bool `json:"notifyNearby,omitempty" bson:"notifyNearby,omitempty"`
	CallPolice             *bool `json:"callPolice,omitempty" bson:"callPolice,omitempty"`
}

type NotificationSettings struct {
	NearbyAlerts   *bool `json:"nearbyAlerts,omitempty" bson:"nearbyAlerts,omitempty"`
	DetailedPrompt *bool `json:"detailedPrompt,omitempty" bson:"detailedPrompt,omitempty"`
	Sound          *bool `json:"sound,omitempty" bson:"sound,omitempty"`
	Vibration      *bool `json:"vibration,omitempty" bson:"vibration,omitempty"`
}

func Bool(v bool) *bool { return &v }

func DefaultSettings() Settings {
	return Settings{
		ThreeTap: &ThreeTapSettings{
			NotifyEmergencyContact: Bool(true),
			NotifyNearby:           Bool(true),
			CallPolice:             Bool(true),
		},
		Notifications: &NotificationSettings{
			NearbyAlerts:   Bool(true),
			DetailedPrompt: Bool(false),
			Sound:          Bool(false),
			Vibration:      Bool(true),
		},
	}
}

// enabledUnlessFalse treats an absent flag as enabled.
func enabledUnlessFalse(v *bool) bool {
	return v == nil || *v
}

// ThreeTapActions resolves the 3-tap action flags. Only an explicit false
// suppresses an action.
func (s Settings) ThreeTapActions() SosActions {
	t := s.ThreeTap
	if t == nil {
		t = &ThreeTapSettings{}
	}
	return SosActions{
		NotifyNearby:           enabledUnlessFalse(t.NotifyNearby),
		NotifyEmergencyContact: enabledUnlessFalse(t.NotifyEmergencyContact),
		CallPolice:             enabledUnlessFalse(t.CallPolice),
	}
}

// AcceptsNearbyAlerts reports whether the user has not opted out of
// proximity alerts.
func (s Settings) AcceptsNearbyAlerts() bool {
	if s.Notifications == nil {
		return true
	}
	return enabledUnlessFalse(s.Notifications.NearbyAlerts)
}
