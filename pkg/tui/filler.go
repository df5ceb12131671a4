// Package tui fills a declaration interactively. Fields are asked in
// document order; after every answer the form is resolved again so newly
// revealed fields are asked and newly hidden ones are skipped.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
	"github.com/goliatone/go-formcond/pkg/resolver"
	"github.com/goliatone/go-formcond/pkg/valuestore"
)

const (
	dateLayout = "2006-01-02"
	skipOption = "(skip)"
)

// Theme holds the prefixes used for informational lines.
type Theme struct {
	ShownPrefix  string
	HiddenPrefix string
	ErrorPrefix  string
}

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithResolver sets the resolver used between answers.
func WithResolver(r *resolver.Resolver) Option {
	return func(f *Filler) {
		if r != nil {
			f.resolver = r
		}
	}
}

// WithHistory sets the event's action history.
func WithHistory(history predicate.Actions) Option {
	return func(f *Filler) {
		f.history = history
	}
}

// WithLocale selects the locale for prompt labels.
func WithLocale(locale string) Option {
	return func(f *Filler) {
		f.locale = locale
	}
}

// WithTranslator resolves label ids.
func WithTranslator(t message.Translator) Option {
	return func(f *Filler) {
		f.translator = t
	}
}

// WithLogger records answers at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// Filler drives one interactive session over a value store.
type Filler struct {
	version    *form.Version
	store      *valuestore.Store
	driver     PromptDriver
	resolver   *resolver.Resolver
	history    predicate.Actions
	locale     string
	translator message.Translator
	logger     *zap.Logger
	theme      Theme
}

// NewFiller prepares a session for v writing into store.
func NewFiller(v *form.Version, store *valuestore.Store, options ...Option) (*Filler, error) {
	if v == nil {
		return nil, ErrNilVersion
	}
	if store == nil {
		store = valuestore.New()
	}
	f := &Filler{
		version: v,
		store:   store,
		logger:  zap.NewNop(),
		theme:   Theme{ShownPrefix: "+", HiddenPrefix: "-", ErrorPrefix: "!"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver()
	}
	if f.resolver == nil {
		f.resolver = resolver.New(resolver.WithLogger(f.logger))
	}
	return f, nil
}

// Store returns the store the session writes into.
func (f *Filler) Store() *valuestore.Store { return f.store }

// Fill asks every visible field once and returns the final resolution.
// Fields that still carry errors are reported through Info.
func (f *Filler) Fill(ctx context.Context) (resolver.Result, error) {
	asked := make(map[string]bool)
	current := f.resolve()
	for {
		state, ok := nextField(current, asked)
		if !ok {
			break
		}
		asked[state.Path.String()] = true

		field, _ := f.version.Field(state.Path)
		if state.DisplayOnly {
			if err := f.driver.Info(ctx, f.label(field)); err != nil {
				return current, err
			}
			continue
		}
		if err := f.ask(ctx, field, state); err != nil {
			return current, err
		}

		updated := f.resolve()
		shown, hidden := resolver.VisibilityChanges(current, updated)
		if err := f.announce(ctx, shown, hidden); err != nil {
			return updated, err
		}
		current = updated
	}

	for _, state := range current.Invalid() {
		for _, m := range state.Errors {
			line := fmt.Sprintf("%s %s: %s", f.theme.ErrorPrefix, state.Path, message.Localize(f.locale, m, f.translator, nil))
			if err := f.driver.Info(ctx, line); err != nil {
				return current, err
			}
		}
	}
	return current, nil
}

func (f *Filler) resolve() resolver.Result {
	return f.resolver.Resolve(f.version, f.store.Snapshot(), f.history)
}

func nextField(res resolver.Result, asked map[string]bool) (resolver.FieldState, bool) {
	for _, state := range res.Fields {
		if state.Visible && !asked[state.Path.String()] {
			return state, true
		}
	}
	return resolver.FieldState{}, false
}

func (f *Filler) announce(ctx context.Context, shown, hidden []fieldpath.Path) error {
	for _, p := range shown {
		if err := f.driver.Info(ctx, fmt.Sprintf("%s %s", f.theme.ShownPrefix, p)); err != nil {
			return err
		}
	}
	for _, p := range hidden {
		if err := f.driver.Info(ctx, fmt.Sprintf("%s %s", f.theme.HiddenPrefix, p)); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) ask(ctx context.Context, field form.Field, state resolver.FieldState) error {
	current, _ := f.store.Get(field.ID)
	if current == nil {
		current = field.Default
	}
	prompt := f.label(field)
	if state.RequiredNow {
		prompt += " *"
	}
	help := field.ID.String()

	var (
		value any
		err   error
	)
	switch {
	case field.Type == form.TypeCheckbox:
		def, _ := current.(bool)
		value, err = f.driver.Confirm(ctx, ConfirmConfig{Message: prompt, Default: def, Help: help})
	case field.Type.HasOptions():
		value, err = f.choose(ctx, field, state, prompt, help, current)
	default:
		def, _ := current.(string)
		var text string
		text, err = f.driver.Input(ctx, InputConfig{
			Message:   prompt,
			Default:   def,
			Help:      help,
			Validator: validator(field.Type, state.RequiredNow),
		})
		value = textValue(field.Type, strings.TrimSpace(text))
	}
	if err != nil {
		return err
	}

	f.logger.Debug("answer recorded", zap.Stringer("field", field.ID), zap.Any("value", value))
	if value == nil {
		return f.store.Unset(field.ID)
	}
	return f.store.Set(field.ID, value)
}

func (f *Filler) choose(ctx context.Context, field form.Field, state resolver.FieldState, prompt, help string, current any) (any, error) {
	options := make([]string, 0, len(field.Options)+1)
	def := -1
	for i, opt := range field.Options {
		options = append(options, f.localize(opt.Label, opt.Value))
		if opt.Value == current {
			def = i
		}
	}
	if !state.RequiredNow {
		options = append(options, skipOption)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: prompt, Options: options, DefaultIndex: def, Help: help})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return nil, nil
	}
	return field.Options[idx].Value, nil
}

func textValue(t form.FieldType, text string) any {
	if text == "" {
		return nil
	}
	if t == form.TypeFile {
		return map[string]any{"name": filepath.Base(text), "path": text}
	}
	return text
}

func validator(t form.FieldType, required bool) func(string) error {
	return func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			if required {
				return errors.New("an answer is required")
			}
			return nil
		}
		switch t {
		case form.TypeDate:
			if _, err := time.Parse(dateLayout, raw); err != nil {
				return fmt.Errorf("use the %s format", dateLayout)
			}
		case form.TypeEmail:
			if !strings.Contains(raw, "@") {
				return errors.New("not an email address")
			}
		}
		return nil
	}
}

func (f *Filler) label(field form.Field) string {
	return f.localize(field.Label, field.ID.String())
}

func (f *Filler) localize(m message.Message, fallback string) string {
	if text := message.Localize(f.locale, m, f.translator, nil); text != "" {
		return text
	}
	return fallback
}
