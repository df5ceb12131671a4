package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcond/pkg/action"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

// ErrSubmissionBlocked is matched by every *SubmissionError.
var ErrSubmissionBlocked = errors.New("resolver: submission blocked")

// FieldState is the resolved state of one field.
type FieldState struct {
	Path        fieldpath.Path    `json:"path"`
	Type        form.FieldType    `json:"type"`
	Visible     bool              `json:"visible"`
	RequiredNow bool              `json:"requiredNow"`
	DisplayOnly bool              `json:"displayOnly,omitempty"`
	Errors      []message.Message `json:"errors"`
	// Warning carries the evaluation error that forced the field hidden.
	Warning string `json:"warning,omitempty"`
}

// Valid reports whether the field blocks nothing.
func (s FieldState) Valid() bool {
	return !s.Visible || len(s.Errors) == 0
}

// Result is the outcome of one resolution pass.
type Result struct {
	Version string       `json:"version"`
	Fields  []FieldState `json:"fields"`
	index   map[string]int
}

// Field returns the state of path.
func (r Result) Field(path fieldpath.Path) (FieldState, bool) {
	i, ok := r.index[path.String()]
	if !ok {
		return FieldState{}, false
	}
	return r.Fields[i], true
}

// Valid reports whether every visible field is free of errors.
func (r Result) Valid() bool {
	for _, f := range r.Fields {
		if !f.Valid() {
			return false
		}
	}
	return true
}

// Visible lists visible field paths in document order.
func (r Result) Visible() []fieldpath.Path {
	var out []fieldpath.Path
	for _, f := range r.Fields {
		if f.Visible {
			out = append(out, f.Path)
		}
	}
	return out
}

// Invalid lists the visible fields that carry errors.
func (r Result) Invalid() []FieldState {
	var out []FieldState
	for _, f := range r.Fields {
		if !f.Valid() {
			out = append(out, f)
		}
	}
	return out
}

// Payload builds the submission payload: answered, visible, value-holding
// fields keyed by canonical path. Hidden answers stay in the store but are
// never submitted.
func (r Result) Payload(values predicate.Values) map[string]any {
	out := make(map[string]any)
	if values == nil {
		return out
	}
	for _, f := range r.Fields {
		if !f.Visible || f.DisplayOnly {
			continue
		}
		value, ok := values.Get(f.Path)
		if !ok || value == nil {
			continue
		}
		out[f.Path.String()] = value
	}
	return out
}

// Gate checks whether act may be submitted: every visible field must be
// free of errors. It returns a *SubmissionError otherwise.
func (r Result) Gate(act action.Type) error {
	blocking := r.Invalid()
	if len(blocking) == 0 {
		return nil
	}
	return &SubmissionError{Action: act, Version: r.Version, Blocking: blocking}
}

// SubmissionError lists the fields that block an action.
type SubmissionError struct {
	Action   action.Type
	Version  string
	Blocking []FieldState
}

func (e *SubmissionError) Error() string {
	paths := make([]string, len(e.Blocking))
	for i, f := range e.Blocking {
		paths[i] = f.Path.String()
	}
	return fmt.Sprintf("resolver: %s blocked by %d field(s): %s", e.Action, len(e.Blocking), strings.Join(paths, ", "))
}

func (e *SubmissionError) Unwrap() error { return ErrSubmissionBlocked }

// Gate is Result.Gate with the blocked submission recorded in metrics.
func (r *Resolver) Gate(result Result, act action.Type) error {
	err := result.Gate(act)
	if err != nil {
		r.metrics.IncrementBlocked(result.Version, string(act))
	}
	return err
}

// VisibilityChanges compares two passes over the same version and reports
// the fields that became visible and the ones that became hidden.
func VisibilityChanges(prev, next Result) (shown, hidden []fieldpath.Path) {
	for _, f := range next.Fields {
		before, ok := prev.Field(f.Path)
		switch {
		case !ok && f.Visible, ok && !before.Visible && f.Visible:
			shown = append(shown, f.Path)
		case ok && before.Visible && !f.Visible:
			hidden = append(hidden, f.Path)
		}
	}
	return shown, hidden
}
