// Package formcond resolves conditional civil registration forms: which
// fields a declaration shows, which of them are required right now, and
// whether the declaration may be submitted.
//
// The root package re-exports the orchestrator so callers can start from a
// single import; the building blocks live under pkg/.
package formcond

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/orchestrator"
	"github.com/goliatone/go-formcond/pkg/resolver"
	"github.com/goliatone/go-formcond/pkg/valuestore"
)

// Engine is the orchestrator exported via the root package for convenience.
type Engine = orchestrator.Orchestrator

// Option configures an Engine.
type Option = orchestrator.Option

// Request describes one declaration to resolve.
type Request = orchestrator.Request

// Response pairs a resolution pass with its form version.
type Response = orchestrator.Response

// Submission is an accepted payload.
type Submission = orchestrator.Submission

// Result is the outcome of one resolution pass.
type Result = resolver.Result

// FieldState is the resolved state of one field.
type FieldState = resolver.FieldState

// Re-exported options.
var (
	WithRegistry          = orchestrator.WithRegistry
	WithLogger            = orchestrator.WithLogger
	WithMetricsRegisterer = orchestrator.WithMetricsRegisterer
	WithClock             = orchestrator.WithClock
	WithParallelism       = orchestrator.WithParallelism
	WithPayloadValidation = orchestrator.WithPayloadValidation
)

// New constructs an Engine.
func New(options ...Option) *Engine {
	return orchestrator.New(options...)
}

// NewStore returns an empty value store for a new declaration.
func NewStore(options ...valuestore.Option) *valuestore.Store {
	return valuestore.New(options...)
}

// LoadRegistry reads every form document in fsys into a new registry,
// activating the versions flagged active.
func LoadRegistry(fsys fs.FS, options ...form.LoaderOption) (*form.Registry, error) {
	versions, err := form.LoadFS(fsys, options...)
	if err != nil {
		return nil, err
	}
	registry := form.NewRegistry()
	if err := registry.Load(versions...); err != nil {
		return nil, fmt.Errorf("formcond: load registry: %w", err)
	}
	return registry, nil
}
