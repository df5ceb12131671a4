// Package resolver computes the per-field state of a declaration form: which
// fields are visible, which are required right now and which validation
// messages apply. Resolution is a pure single pass over a value snapshot;
// visibility predicates read committed values, never another field's
// computed visibility.
package resolver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcond/internal/metrics"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

// MsgRequired is reported for a visible required field without a value.
var MsgRequired = message.New("form.required", "Required for registration")

// ErrPredicatePanic wraps a panic raised while evaluating a predicate.
var ErrPredicatePanic = errors.New("resolver: predicate panicked")

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for isolated evaluation failures.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithClock fixes the instant date predicates compare against.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// Resolver evaluates form versions. It holds no per-pass state and is safe
// for concurrent use.
type Resolver struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New constructs a Resolver.
func New(options ...Option) *Resolver {
	r := &Resolver{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve computes the state of every field of v, in document order, against
// values and history. history may be nil. Evaluation failures are isolated
// to the field that raised them.
func (r *Resolver) Resolve(v *form.Version, values predicate.Values, history predicate.Actions) Result {
	start := time.Now()
	result := Result{index: make(map[string]int)}
	if v == nil {
		return result
	}
	result.Version = v.ID

	env := predicate.Env{Values: values, Actions: history, Now: r.now()}
	visible := 0
	for _, f := range v.Fields() {
		state := r.resolveField(v.ID, f, env)
		if state.Visible {
			visible++
		}
		result.index[state.Path.String()] = len(result.Fields)
		result.Fields = append(result.Fields, state)
	}

	r.metrics.ObserveResolve(v.ID, start)
	r.metrics.AddFields(v.ID, visible, len(result.Fields)-visible)
	return result
}

func (r *Resolver) resolveField(version string, f form.Field, env predicate.Env) FieldState {
	state := FieldState{
		Path:        f.ID.Clone(),
		Type:        f.Type,
		Visible:     true,
		DisplayOnly: f.Type.DisplayOnly(),
	}

	for i, cond := range f.Conditionals {
		if cond.Type != form.EffectHide {
			continue
		}
		hide, err := evaluate(cond.Predicate, env)
		if err != nil {
			state.Visible = false
			state.Warning = err.Error()
			r.metrics.ObserveEvalError(version, metrics.StageConditional)
			r.logger.Warn("conditional failed to evaluate, hiding field",
				zap.String("version", version),
				zap.Stringer("field", f.ID),
				zap.Int("conditional", i),
				zap.Error(err),
			)
			break
		}
		if hide {
			state.Visible = false
			break
		}
	}

	if !state.Visible || state.DisplayOnly {
		return state
	}

	state.RequiredNow = f.Required
	value, present := lookup(env.Values, f)
	if isEmpty(f.Type, value, present) {
		if f.Required {
			state.Errors = append(state.Errors, MsgRequired)
		}
		return state
	}

	for i, rule := range f.Validation {
		ok, err := evaluate(rule.Predicate, env)
		if err != nil {
			r.metrics.ObserveEvalError(version, metrics.StageValidation)
			r.logger.Warn("validation rule failed to evaluate",
				zap.String("version", version),
				zap.Stringer("field", f.ID),
				zap.Int("rule", i),
				zap.Error(err),
			)
		}
		if err != nil || !ok {
			state.Errors = append(state.Errors, rule.Message)
		}
	}
	return state
}

// evaluate runs the interpreter, turning a panic into an error.
func evaluate(node *predicate.Node, env predicate.Env) (result bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = false
			err = fmt.Errorf("%w: %v", ErrPredicatePanic, rec)
		}
	}()
	return predicate.Eval(node, env)
}

func lookup(values predicate.Values, f form.Field) (value any, ok bool) {
	if values == nil {
		return nil, false
	}
	defer func() {
		if rec := recover(); rec != nil {
			value, ok = nil, false
		}
	}()
	return values.Get(f.ID)
}

// isEmpty treats absent, nil, blank strings and empty collections as no
// answer. An unticked checkbox is no answer either.
func isEmpty(t form.FieldType, value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed) == ""
	case bool:
		return t == form.TypeCheckbox && !typed
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	case map[string]string:
		return len(typed) == 0
	default:
		return false
	}
}
