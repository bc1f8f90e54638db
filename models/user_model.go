package models

type User struct {
	ID           string     `json:"id" bson:"id"`
	Email        string     `json:"email" bson:"email"`
	Salt         string     `json:"salt" bson:"salt"`
	PasswordHash string     `json:"passwordHash" bson:"passwordHash"`
	Profile      Profile    `json:"profile" bson:"profile"`
	Contacts     []Contact  `json:"contacts" bson:"contacts"`
	SafeWords    []SafeWord `json:"safeWords" bson:"safeWords"`
	Settings     Settings   `json:"settings" bson:"settings"`
	LastLocation *Location  `json:"lastLocation" bson:"lastLocation"`
}

// PublicUser is the view returned by signup and login.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Profile.Name}
}

type Profile struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email" bson:"email"`
}

type Contact struct {
	ID            string `json:"id" bson:"id"`
	Name          string `json:"name" bson:"name"`
	Relationship  string `json:"relationship" bson:"relationship"`
	Phone         string `json:"phone" bson:"phone"`
	Email         string `json:"email" bson:"email"`
	ShareLocation bool   `json:"shareLocation" bson:"shareLocation"`
}

type SafeWord struct {
	ID                     string `json:"id" bson:"id"`
	Word                   string `json:"word" bson:"word"`
	NotifyEmergencyContact bool   `json:"notifyEmergencyContact" bson:"notifyEmergencyContact"`
	NotifyNearby           bool   `json:"notifyNearby" bson:"notifyNearby"`
	CallPolice             bool   `json:"callPolice" bson:"callPolice"`
	Activate               bool   `json:"activate" bson:"activate"`
}

type Location struct {
	Lat       float64 `json:"lat" bson:"lat"`
	Lng       float64 `json:"lng" bson:"lng"`
	Timestamp int64   `json:"timestamp" bson:"timestamp"`
}
