// Package metrics defines the Prometheus counters for SOS dispatch, alert
// delivery and authentication.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "silentsos"

type Metrics struct {
	SosEventsTotal       *prometheus.CounterVec
	AlertsCreatedTotal   prometheus.Counter
	AlertsDeliveredTotal prometheus.Counter
	AuthAttemptsTotal    *prometheus.CounterVec
}

// New creates the counters and registers them with reg. A nil reg leaves
// them unregistered, which tests use to avoid the global registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SosEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sos_events_total",
			Help:      "SOS events dispatched by trigger type",
		}, []string{"type"}),
		AlertsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_created_total",
			Help:      "Proximity alerts created by SOS fan-out",
		}),
		AlertsDeliveredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_delivered_total",
			Help:      "Proximity alerts handed to their recipient",
		}),
		AuthAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Signup and login attempts by operation and result",
		}, []string{"operation", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.SosEventsTotal, m.AlertsCreatedTotal, m.AlertsDeliveredTotal, m.AuthAttemptsTotal)
	}
	return m
}
