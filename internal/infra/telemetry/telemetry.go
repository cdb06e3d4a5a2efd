package telemetry

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
)

// AuthMetrics counts signup, login and logout outcomes.
type AuthMetrics struct {
	outcomes *prometheus.CounterVec
}

// NewAuthMetrics registers the outcome counter with reg, reusing an existing
// collector when one is already registered under the same name.
func NewAuthMetrics(reg prometheus.Registerer) (*AuthMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth",
		Name:      "operations_total",
		Help:      "Account operations partitioned by operation and outcome.",
	}, []string{"operation", "outcome"})

	if err := reg.Register(outcomes); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, fmt.Errorf("register outcome collector: %w", err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("existing outcome collector has unexpected type %T", already.ExistingCollector)
		}
		outcomes = existing
	}

	return &AuthMetrics{outcomes: outcomes}, nil
}

// ObserveOutcome increments the counter for operation and outcome.
func (m *AuthMetrics) ObserveOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(operation, outcome).Inc()
}

// Outcomes exposes the underlying collector.
func (m *AuthMetrics) Outcomes() *prometheus.CounterVec {
	return m.outcomes
}

var _ port.AuthMetrics = (*AuthMetrics)(nil)
