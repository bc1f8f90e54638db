package models

type TriggerType string

const (
	TriggerThreeTap TriggerType = "3-tap"
	TriggerSafeWord TriggerType = "safe-word"
)

type AlertStatus string

const (
	AlertStatusNew       AlertStatus = "new"
	AlertStatusDelivered AlertStatus = "delivered"
)

type SosActions struct {
	NotifyNearby           bool `json:"notifyNearby" bson:"notifyNearby"`
	NotifyEmergencyContact bool `json:"notifyEmergencyContact" bson:"notifyEmergencyContact"`
	CallPolice             bool `json:"callPolice" bson:"callPolice"`
}

type SosEvent struct {
	ID           string      `json:"id" bson:"id"`
	UserID       string      `json:"userId" bson:"userId"`
	Lat          float64     `json:"lat" bson:"lat"`
	Lng          float64     `json:"lng" bson:"lng"`
	Type         TriggerType `json:"type" bson:"type"`
	LocationText string      `json:"locationText" bson:"locationText"`
	Actions      SosActions  `json:"actions" bson:"actions"`
	Timestamp    int64       `json:"timestamp" bson:"timestamp"`
}

type Alert struct {
	ID            string      `json:"id" bson:"id"`
	UserID        string      `json:"userId" bson:"userId"`
	FromUserID    string      `json:"fromUserId" bson:"fromUserId"`
	Lat           float64     `json:"lat" bson:"lat"`
	Lng           float64     `json:"lng" bson:"lng"`
	DistanceMiles float64     `json:"distanceMiles" bson:"distanceMiles"`
	Type          TriggerType `json:"type" bson:"type"`
	Timestamp     int64       `json:"timestamp" bson:"timestamp"`
	Status        AlertStatus `json:"status" bson:"status"`
}
