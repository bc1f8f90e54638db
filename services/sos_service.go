package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"silentsos-server/metrics"
	"silentsos-server/models"
	"silentsos-server/store"
	"silentsos-server/utils/errors"
)

type DispatchInput struct {
	Lat          float64
	Lng          float64
	Type         models.TriggerType
	LocationText string
}

// SOSService records SOS events and fans out proximity alerts. Dispatch is
// not idempotent: every call creates a new event and, if recipients are
// still in range, a new set of alerts.
type SOSService struct {
	store   *store.Store
	geo     *GeoService
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewSOSService(st *store.Store, geo *GeoService, m *metrics.Metrics, logger *zap.Logger) *SOSService {
	return &SOSService{store: st, geo: geo, metrics: m, logger: logger, now: time.Now}
}

// ResolveActions computes the actions for a trigger. For 3-tap only an
// explicit false in the sender's settings disables an action. For a safe
// word each action is the OR over all active safe words; the server does not
// know which word was spoken.
func ResolveActions(user *models.User, trigger models.TriggerType) models.SosActions {
	if trigger == models.TriggerThreeTap {
		return user.Settings.ThreeTapActions()
	}
	var actions models.SosActions
	for _, w := range user.SafeWords {
		if !w.Activate {
			continue
		}
		actions.NotifyNearby = actions.NotifyNearby || w.NotifyNearby
		actions.NotifyEmergencyContact = actions.NotifyEmergencyContact || w.NotifyEmergencyContact
		actions.CallPolice = actions.CallPolice || w.CallPolice
	}
	return actions
}

func (s *SOSService) Dispatch(ctx context.Context, userID string, in DispatchInput) (models.SosEvent, error) {
	trigger := in.Type
	if trigger == "" {
		trigger = models.TriggerThreeTap
	}
	if trigger != models.TriggerThreeTap && trigger != models.TriggerSafeWord {
		return models.SosEvent{}, errors.Validation("type must be \"3-tap\" or \"safe-word\"")
	}

	var (
		event  models.SosEvent
		alerts int
	)
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		sender, err := tx.Users().FindByID(userID)
		if err != nil {
			return err
		}
		timestamp := s.now().UnixMilli()
		sender.LastLocation = &models.Location{Lat: in.Lat, Lng: in.Lng, Timestamp: timestamp}

		event = models.SosEvent{
			ID:           uuid.New().String(),
			UserID:       sender.ID,
			Lat:          in.Lat,
			Lng:          in.Lng,
			Type:         trigger,
			LocationText: in.LocationText,
			Actions:      ResolveActions(sender, trigger),
			Timestamp:    timestamp,
		}
		tx.SosEvents().Append(event)

		if !event.Actions.NotifyNearby {
			return nil
		}
		for _, n := range s.geo.FindNearbyUsers(sender.ID, in.Lat, in.Lng, tx.Users().All()) {
			tx.Alerts().Append(models.Alert{
				ID:            uuid.New().String(),
				UserID:        n.User.ID,
				FromUserID:    sender.ID,
				Lat:           in.Lat,
				Lng:           in.Lng,
				DistanceMiles: n.Distance,
				Type:          trigger,
				Timestamp:     timestamp,
				Status:        models.AlertStatusNew,
			})
			alerts++
		}
		return nil
	})
	if err != nil {
		return models.SosEvent{}, errors.Internal(err, "Failed to dispatch SOS")
	}

	s.metrics.SosEventsTotal.WithLabelValues(string(trigger)).Inc()
	s.metrics.AlertsCreatedTotal.Add(float64(alerts))
	s.logger.Info("SOS dispatched",
		zap.String("sos_id", event.ID),
		zap.String("user_id", userID),
		zap.String("type", string(trigger)),
		zap.Bool("notify_nearby", event.Actions.NotifyNearby),
		zap.Bool("notify_emergency_contact", event.Actions.NotifyEmergencyContact),
		zap.Bool("call_police", event.Actions.CallPolice),
		zap.Int("alerts", alerts),
	)
	return event, nil
}
