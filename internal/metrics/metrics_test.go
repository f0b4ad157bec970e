package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("clone_drive", 202)
	m.ObserveRequest("clone_drive", 202)
	m.ObserveRequest("clone_drive", 500)
	m.ObserveRetry("clone_drive")
	m.ObserveExhausted("delete_server")
	m.ObserveNodeOperation("create", ResultSuccess, 3*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("clone_drive", "202")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("clone_drive", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRetries.WithLabelValues("clone_drive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiExhausted.WithLabelValues("delete_server")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodeOperations.WithLabelValues("create", ResultSuccess)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.nodeOperationDuration))
}

func TestMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(reg)
	second := New(reg)

	first.ObserveRetry("get_drive")
	second.ObserveRetry("get_drive")

	assert.Equal(t, 2.0, testutil.ToFloat64(first.apiRetries.WithLabelValues("get_drive")))
}

func TestMetrics_NilSafe(_ *testing.T) {
	var m *Metrics
	m.ObserveRequest("x", 200)
	m.ObserveRetry("x")
	m.ObserveExhausted("x")
	m.ObserveNodeOperation("x", ResultError, time.Second)
}
