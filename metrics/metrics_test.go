package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SosEventsTotal.WithLabelValues("3-tap").Inc()
	m.AlertsCreatedTotal.Add(2)
	m.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SosEventsTotal.WithLabelValues("3-tap")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AlertsCreatedTotal))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestNewWithoutRegistry(t *testing.T) {
	m := New(nil)
	m.AlertsDeliveredTotal.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsDeliveredTotal))
}
