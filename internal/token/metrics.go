// file: internal/token/metrics.go

package token

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides centralized metrics collection for the token cache.
type Metrics struct {
	RefreshSuccessTotal  prometheus.Counter
	RefreshFailuresTotal prometheus.Counter
	RefreshDuration      prometheus.Histogram
}

// NewMetrics creates a new metrics instance and registers the collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RefreshSuccessTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "token_refresh_success_total",
				Help: "Total number of successful token refreshes.",
			},
		),
		RefreshFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "token_refresh_failures_total",
				Help: "Total number of failed token refreshes.",
			},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "token_refresh_duration_seconds",
				Help:    "Duration of token refresh requests.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	if err := reg.Register(m.RefreshSuccessTotal); err != nil {
		return nil, err
	}
	if err := reg.Register(m.RefreshFailuresTotal); err != nil {
		return nil, err
	}
	if err := reg.Register(m.RefreshDuration); err != nil {
		return nil, err
	}

	return m, nil
}

// IncRefreshSuccess increments the counter for successful refreshes.
func (m *Metrics) IncRefreshSuccess() {
	m.RefreshSuccessTotal.Inc()
}

// IncRefreshFailure increments the counter for failed refreshes.
func (m *Metrics) IncRefreshFailure() {
	m.RefreshFailuresTotal.Inc()
}

// ObserveRefreshDuration records the duration of a refresh attempt.
func (m *Metrics) ObserveRefreshDuration(seconds float64) {
	m.RefreshDuration.Observe(seconds)
}
