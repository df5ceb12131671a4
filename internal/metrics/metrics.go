// Package metrics holds the Prometheus instruments for form resolution.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation stages reported by ObserveEvalError.
const (
	StageConditional = "conditional"
	StageValidation  = "validation"
)

// Metrics tracks resolution latency, predicate failures and blocked
// submissions. A nil *Metrics is a valid no-op.
type Metrics struct {
	ResolveDuration   *prometheus.HistogramVec
	FieldsResolved    *prometheus.CounterVec
	EvalErrors        *prometheus.CounterVec
	BlockedSubmission *prometheus.CounterVec
}

// New registers the instruments on reg. A nil reg uses the default
// registerer. Instruments already registered on reg are reused, so several
// engines may share one registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		ResolveDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "formcond_resolve_duration_seconds",
			Help:    "Duration of a full form resolution pass",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"version"})),
		FieldsResolved: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formcond_fields_resolved_total",
			Help: "Fields resolved, by visibility",
		}, []string{"version", "visible"})),
		EvalErrors: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formcond_predicate_errors_total",
			Help: "Predicates that failed to evaluate and were isolated to their field",
		}, []string{"version", "stage"})),
		BlockedSubmission: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formcond_blocked_submissions_total",
			Help: "Submission gate checks that blocked an action",
		}, []string{"version", "action"})),
	}
}

// register adds c to reg, returning the collector already registered under
// the same descriptor when there is one. Any other error panics, as
// MustRegister does.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}

// ObserveResolve records the duration of a resolution pass started at start.
func (m *Metrics) ObserveResolve(version string, start time.Time) {
	if m == nil {
		return
	}
	m.ResolveDuration.WithLabelValues(version).Observe(time.Since(start).Seconds())
}

// AddFields records how many fields ended visible and hidden.
func (m *Metrics) AddFields(version string, visible, hidden int) {
	if m == nil {
		return
	}
	m.FieldsResolved.WithLabelValues(version, "true").Add(float64(visible))
	m.FieldsResolved.WithLabelValues(version, "false").Add(float64(hidden))
}

// ObserveEvalError counts a predicate failure at stage.
func (m *Metrics) ObserveEvalError(version, stage string) {
	if m == nil {
		return
	}
	m.EvalErrors.WithLabelValues(version, stage).Inc()
}

// IncrementBlocked counts a blocked submission for action.
func (m *Metrics) IncrementBlocked(version, action string) {
	if m == nil {
		return
	}
	m.BlockedSubmission.WithLabelValues(version, action).Inc()
}
