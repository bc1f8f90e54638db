package services

import (
	"context"

	"go.uber.org/zap"

	"silentsos-server/metrics"
	"silentsos-server/models"
	"silentsos-server/store"
	"silentsos-server/utils/errors"
)

// AlertService is the per-user inbox of proximity alerts and the SOS
// history.
type AlertService struct {
	store   *store.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewAlertService(st *store.Store, m *metrics.Metrics, logger *zap.Logger) *AlertService {
	return &AlertService{store: st, metrics: m, logger: logger}
}

// Fetch returns the user's pending alerts in insertion order and marks them
// delivered in the same transaction, so each alert is returned once.
func (s *AlertService) Fetch(ctx context.Context, userID string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		alerts = tx.Alerts().TakeNew(userID)
		return nil
	})
	if err != nil {
		return nil, errors.Internal(err, "Failed to fetch alerts")
	}
	if len(alerts) > 0 {
		s.metrics.AlertsDeliveredTotal.Add(float64(len(alerts)))
		s.logger.Debug("Alerts delivered", zap.String("user_id", userID), zap.Int("count", len(alerts)))
	}
	return alerts, nil
}

// History returns every SOS event the user originated.
func (s *AlertService) History(ctx context.Context, userID string) ([]models.SosEvent, error) {
	var events []models.SosEvent
	err := s.store.View(ctx, func(tx *store.Tx) error {
		events = tx.SosEvents().ListByUser(userID)
		return nil
	})
	if err != nil {
		return nil, errors.Internal(err, "Failed to load history")
	}
	return events, nil
}
