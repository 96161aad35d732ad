package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := NewWithRegistry("lab-test", prometheus.NewRegistry())

	m.ReservationCreated()
	m.ReservationCreated()
	m.ConflictDetected("create")
	m.DecisionRecorded("approve")
	m.RefreshCompleted("manual")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsCreated.WithLabelValues("lab-test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationConflicts.WithLabelValues("lab-test", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationDecisions.WithLabelValues("lab-test", "approve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewRefreshes.WithLabelValues("lab-test", "manual")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ReservationCreated()
		m.ConflictDetected("approve")
		m.DecisionRecorded("deny")
		m.RefreshCompleted("scheduled")
	})
}
