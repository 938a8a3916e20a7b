// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RequestsTotal
const (
	OutcomeOK        = "ok"
	OutcomeNetwork   = "network_error"
	OutcomeMalformed = "malformed_response"
)

type ClientMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	VotesSuppressed prometheus.Counter
}

// NewClientMetrics registers the client instruments on reg. Pass a fresh
// registry per client; registering twice on the same one panics.
func NewClientMetrics(reg prometheus.Registerer, namespace string) *ClientMetrics {
	factory := promauto.With(reg)
	return &ClientMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Requests sent to the polls backend by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Round-trip time of polls backend requests",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
			},
			[]string{"endpoint"},
		),
		VotesSuppressed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "votes_suppressed_total",
				Help:      "Votes dropped locally because the poll was already voted on",
			},
		),
	}
}

// ObserveRequest records one backend call. Safe on a nil receiver.
func (m *ClientMetrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// VoteSuppressed counts a locally suppressed vote. Safe on a nil receiver.
func (m *ClientMetrics) VoteSuppressed() {
	if m == nil {
		return
	}
	m.VotesSuppressed.Inc()
}
