package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

var (
	// ErrUnknownFieldPath marks a predicate that references a path no field
	// in the version defines.
	ErrUnknownFieldPath = errors.New("form: unknown field path")
	// ErrDuplicateField marks two fields sharing an id.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrInvalidField marks a structurally broken field definition.
	ErrInvalidField = errors.New("form: invalid field")
	// ErrInvalidPredicate marks a predicate that fails structural checks.
	ErrInvalidPredicate = errors.New("form: invalid predicate")
	// ErrFragmentCycle marks fragments that include each other.
	ErrFragmentCycle = errors.New("form: fragment cycle")
)

// ConfigError describes one configuration problem. Version validation joins
// every problem it finds with errors.Join.
type ConfigError struct {
	Version string
	Field   fieldpath.Path
	Path    fieldpath.Path
	Detail  string
	Err     error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("form")
	if e.Version != "" {
		fmt.Fprintf(&b, " %s", e.Version)
	}
	if !e.Field.IsZero() {
		fmt.Fprintf(&b, " field %q", e.Field.String())
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(strings.TrimPrefix(e.Err.Error(), "form: "))
	}
	if !e.Path.IsZero() {
		fmt.Fprintf(&b, " %q", e.Path.String())
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ConfigErrors flattens an error returned by Validate into its ConfigError
// parts.
func ConfigErrors(err error) []*ConfigError {
	if err == nil {
		return nil
	}
	var out []*ConfigError
	var collect func(error)
	collect = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				collect(inner)
			}
			return
		}
		var cfg *ConfigError
		if errors.As(e, &cfg) {
			out = append(out, cfg)
		}
	}
	collect(err)
	return out
}

// Validate performs the static checks that gate activation. Every problem
// is reported; the result is nil when the version is usable.
func (v *Version) Validate() error {
	if v == nil {
		return &ConfigError{Err: ErrInvalidField, Detail: "nil version"}
	}
	var errs []error
	report := func(field, path fieldpath.Path, sentinel error, detail string) {
		errs = append(errs, &ConfigError{
			Version: v.ID,
			Field:   field,
			Path:    path,
			Detail:  detail,
			Err:     sentinel,
		})
	}

	if strings.TrimSpace(v.ID) == "" {
		report(nil, nil, ErrInvalidField, "version id is empty")
	}
	if strings.TrimSpace(v.EventType) == "" {
		report(nil, nil, ErrInvalidField, "event type is empty")
	}

	defined := make(map[string]Field)
	pageIDs := make(map[string]struct{})
	for _, page := range v.Pages {
		if _, dup := pageIDs[page.ID]; dup && page.ID != "" {
			report(nil, nil, ErrInvalidField, fmt.Sprintf("duplicate page %q", page.ID))
		}
		pageIDs[page.ID] = struct{}{}

		for _, f := range page.Fields {
			switch {
			case f.ID.IsZero():
				report(nil, nil, ErrInvalidField, fmt.Sprintf("page %q has a field without id", page.ID))
				continue
			case f.ID.IsRelative():
				report(f.ID, nil, ErrInvalidField, "relative id was never prefixed")
				continue
			}
			key := f.ID.String()
			if _, dup := defined[key]; dup {
				report(f.ID, nil, ErrDuplicateField, "")
				continue
			}
			defined[key] = f
			checkFieldShape(f, report)
		}
	}

	for _, f := range v.Fields() {
		if f.ID.IsZero() || f.ID.IsRelative() {
			continue
		}
		for i, cond := range f.Conditionals {
			if cond.Type != EffectHide {
				report(f.ID, nil, ErrInvalidField, fmt.Sprintf("conditional %d has unsupported effect %q", i, cond.Type))
			}
			checkPredicate(f.ID, cond.Predicate, defined, report)
		}
		for _, rule := range f.Validation {
			checkPredicate(f.ID, rule.Predicate, defined, report)
		}
	}

	return errors.Join(errs...)
}

type reporter func(field, path fieldpath.Path, sentinel error, detail string)

func checkFieldShape(f Field, report reporter) {
	if !f.Type.Valid() {
		report(f.ID, nil, ErrInvalidField, fmt.Sprintf("unknown type %q", f.Type))
		return
	}
	if f.Type.DisplayOnly() {
		if f.Required {
			report(f.ID, nil, ErrInvalidField, fmt.Sprintf("%s cannot be required", f.Type))
		}
		if len(f.Validation) > 0 {
			report(f.ID, nil, ErrInvalidField, fmt.Sprintf("%s cannot carry validation", f.Type))
		}
	}
	if f.Type.HasOptions() {
		if len(f.Options) == 0 {
			report(f.ID, nil, ErrInvalidField, "options are required")
		}
		seen := make(map[string]struct{}, len(f.Options))
		for _, opt := range f.Options {
			if _, dup := seen[opt.Value]; dup {
				report(f.ID, nil, ErrInvalidField, fmt.Sprintf("duplicate option %q", opt.Value))
			}
			seen[opt.Value] = struct{}{}
		}
	}
	for i, rule := range f.Validation {
		if rule.Message.IsZero() {
			report(f.ID, nil, ErrInvalidField, fmt.Sprintf("validation rule %d has no message", i))
		}
	}
}

func checkPredicate(owner fieldpath.Path, node *predicate.Node, defined map[string]Field, report reporter) {
	if err := predicate.Check(node); err != nil {
		report(owner, nil, ErrInvalidPredicate, err.Error())
		return
	}
	for _, path := range predicate.Paths(node) {
		if path.IsRelative() {
			report(owner, path, ErrUnknownFieldPath, "relative path was never prefixed")
			continue
		}
		if !resolves(path, defined) {
			report(owner, path, ErrUnknownFieldPath, "")
		}
	}
}

// resolves accepts a defined field or a member of a structured field.
func resolves(path fieldpath.Path, defined map[string]Field) bool {
	if _, ok := defined[path.String()]; ok {
		return true
	}
	for parent := path.Parent(); !parent.IsZero(); parent = parent.Parent() {
		if f, ok := defined[parent.String()]; ok {
			return f.Type.Structured()
		}
	}
	return false
}
