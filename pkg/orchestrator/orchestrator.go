package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formcond/internal/metrics"
	"github.com/goliatone/go-formcond/pkg/action"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/jsonschema"
	"github.com/goliatone/go-formcond/pkg/predicate"
	"github.com/goliatone/go-formcond/pkg/resolver"
)

const defaultParallelism = 4

// ErrNoVersion is returned when a request names neither a version nor an
// event type.
var ErrNoVersion = errors.New("orchestrator: request names no form version")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects the form registry. An empty registry is used
// otherwise.
func WithRegistry(registry *form.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRegisterer enables Prometheus instrumentation on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *Orchestrator) {
		o.metrics = metrics.New(reg)
	}
}

// WithClock fixes the instant date predicates compare against.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithParallelism bounds the number of concurrent passes in ResolveAll.
func WithParallelism(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithPayloadValidation toggles the JSON Schema check Submit runs on the
// payload it produces. It is on by default.
func WithPayloadValidation(enabled bool) Option {
	return func(o *Orchestrator) {
		o.validatePayload = enabled
	}
}

// Orchestrator resolves declarations against registered form versions. It is
// safe for concurrent use.
type Orchestrator struct {
	registry        *form.Registry
	resolver        *resolver.Resolver
	metrics         *metrics.Metrics
	logger          *zap.Logger
	now             func() time.Time
	parallelism     int
	validatePayload bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:        form.NewRegistry(),
		logger:          zap.NewNop(),
		parallelism:     defaultParallelism,
		validatePayload: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.resolver = resolver.New(
		resolver.WithLogger(o.logger),
		resolver.WithMetrics(o.metrics),
		resolver.WithClock(o.now),
	)
	return o
}

// Registry exposes the form registry.
func (o *Orchestrator) Registry() *form.Registry { return o.registry }

// Request describes one declaration to resolve.
type Request struct {
	// VersionID pins a form version. When empty the active version of
	// EventType is used.
	VersionID string
	EventType string

	Values  predicate.Values
	History predicate.Actions
}

// Response pairs a pass with the version it ran against.
type Response struct {
	Version *form.Version
	Result  resolver.Result
}

// Submission is an accepted payload.
type Submission struct {
	Version string
	Action  action.Type
	Payload map[string]any
	Result  resolver.Result
}

// Resolve runs one resolution pass.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	v, err := o.version(req)
	if err != nil {
		return Response{}, err
	}
	return Response{Version: v, Result: o.resolver.Resolve(v, req.Values, req.History)}, nil
}

// ResolveAll resolves independent declarations concurrently. Responses are
// returned in request order; the first failure cancels the rest.
func (o *Orchestrator) ResolveAll(ctx context.Context, reqs []Request) ([]Response, error) {
	out := make([]Response, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for i, req := range reqs {
		g.Go(func() error {
			resp, err := o.Resolve(gctx, req)
			if err != nil {
				return fmt.Errorf("orchestrator: request %d: %w", i, err)
			}
			out[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Submit resolves req and, when every visible field is valid, returns the
// payload for act. A blocked submission returns a *resolver.SubmissionError.
func (o *Orchestrator) Submit(ctx context.Context, req Request, act action.Type) (Submission, error) {
	resp, err := o.Resolve(ctx, req)
	if err != nil {
		return Submission{}, err
	}
	res := resp.Result
	if err := o.resolver.Gate(res, act); err != nil {
		o.logger.Info("submission blocked",
			zap.String("version", res.Version),
			zap.String("action", string(act)),
			zap.Int("blocking", len(res.Invalid())),
		)
		return Submission{Version: res.Version, Action: act, Result: res}, err
	}

	payload := res.Payload(req.Values)
	if o.validatePayload {
		if err := jsonschema.ValidatePayload(resp.Version, res, payload); err != nil {
			o.logger.Error("payload failed schema validation",
				zap.String("version", res.Version),
				zap.String("action", string(act)),
				zap.Error(err),
			)
			return Submission{Version: res.Version, Action: act, Result: res}, err
		}
	}
	o.logger.Debug("submission accepted",
		zap.String("version", res.Version),
		zap.String("action", string(act)),
		zap.Int("fields", len(payload)),
	)
	return Submission{Version: res.Version, Action: act, Payload: payload, Result: res}, nil
}

func (o *Orchestrator) version(req Request) (*form.Version, error) {
	switch {
	case req.VersionID != "":
		return o.registry.Version(req.VersionID)
	case req.EventType != "":
		return o.registry.Active(req.EventType)
	default:
		return nil, ErrNoVersion
	}
}
