// Package metrics defines the Prometheus metrics exported by the resource
// handler.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sigmanode"

// Node operation results.
const (
	ResultSuccess   = "success"
	ResultError     = "error"
	ResultCancelled = "cancelled"
)

// Metrics groups the collectors of one registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	apiRequests  *prometheus.CounterVec
	apiRetries   *prometheus.CounterVec
	apiExhausted *prometheus.CounterVec

	nodeOperations        *prometheus.CounterVec
	nodeOperationDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. Collectors that
// are already registered are reused. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of CloudSigma API requests by operation and HTTP status code",
			},
			[]string{"operation", "code"},
		),
		apiRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "retries_total",
				Help:      "Total number of retried CloudSigma API requests by operation",
			},
			[]string{"operation"},
		),
		apiExhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "retry_budget_exhausted_total",
				Help:      "Total number of CloudSigma API operations that ran out of attempts",
			},
			[]string{"operation"},
		),
		nodeOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "node",
				Name:      "operations_total",
				Help:      "Total number of node operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		nodeOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "node",
				Name:      "operation_duration_seconds",
				Help:      "Duration of node operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
			},
			[]string{"operation"},
		),
	}

	if reg != nil {
		m.apiRequests = register(reg, m.apiRequests)
		m.apiRetries = register(reg, m.apiRetries)
		m.apiExhausted = register(reg, m.apiExhausted)
		m.nodeOperations = register(reg, m.nodeOperations)
		m.nodeOperationDuration = register(reg, m.nodeOperationDuration)
	}
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

// ObserveRequest records one API request. A code of 0 means no response.
func (m *Metrics) ObserveRequest(operation string, code int) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(operation, strconv.Itoa(code)).Inc()
}

// ObserveRetry records a retried API request.
func (m *Metrics) ObserveRetry(operation string) {
	if m == nil {
		return
	}
	m.apiRetries.WithLabelValues(operation).Inc()
}

// ObserveExhausted records an operation that ran out of attempts.
func (m *Metrics) ObserveExhausted(operation string) {
	if m == nil {
		return
	}
	m.apiExhausted.WithLabelValues(operation).Inc()
}

// ObserveNodeOperation records a finished node operation.
func (m *Metrics) ObserveNodeOperation(operation, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.nodeOperations.WithLabelValues(operation, result).Inc()
	m.nodeOperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}
