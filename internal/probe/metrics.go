// file: internal/probe/metrics.go

package probe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides centralized metrics collection for check runs.
type Metrics struct {
	ChecksTotal   *prometheus.CounterVec
	CheckDuration *prometheus.HistogramVec
}

// NewMetrics creates a new metrics instance and registers the collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probe_checks_total",
				Help: "Total number of executed checks by name and outcome.",
			},
			[]string{"check", "outcome"},
		),
		CheckDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "probe_check_duration_seconds",
				Help:    "Duration of check requests by name.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"check"},
		),
	}

	if err := reg.Register(m.ChecksTotal); err != nil {
		return nil, err
	}
	if err := reg.Register(m.CheckDuration); err != nil {
		return nil, err
	}

	return m, nil
}

// IncCheck increments the counter for a check outcome ("pass" or "fail").
func (m *Metrics) IncCheck(check, outcome string) {
	m.ChecksTotal.WithLabelValues(check, outcome).Inc()
}

// ObserveCheckDuration records the duration of a check request.
func (m *Metrics) ObserveCheckDuration(check string, seconds float64) {
	m.CheckDuration.WithLabelValues(check).Observe(seconds)
}
