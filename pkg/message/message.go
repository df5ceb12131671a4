// Package message carries localizable message references through the form
// engine. The engine never renders text itself: labels, option captions and
// validation errors travel as Message values and are only turned into strings
// by a Translator at the presentation edge.
package message

import (
	"errors"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// ErrMissingTranslator is reported to MissingHandler when no translator is
// configured.
var ErrMissingTranslator = errors.New("message: translator is not configured")

// Message references a localizable string. DefaultMessage is the fallback
// text used when no translation exists; Description documents intent for
// translators.
type Message struct {
	ID             string `json:"id" yaml:"id"`
	DefaultMessage string `json:"defaultMessage" yaml:"defaultMessage"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
}

// New builds a message reference.
func New(id, defaultMessage string) Message {
	return Message{ID: id, DefaultMessage: defaultMessage}
}

// IsZero reports whether the message carries neither an id nor a default.
func (m Message) IsZero() bool {
	return strings.TrimSpace(m.ID) == "" && strings.TrimSpace(m.DefaultMessage) == ""
}

// Translator resolves message ids for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingHandler decides what to display when a translation is missing. The
// default behaviour falls back to the message default and then to its id.
type MissingHandler func(locale, key string, args []any, err error) string

// Localize renders m for locale. Translation failures are routed through
// onMissing when provided.
func Localize(locale string, m Message, t Translator, onMissing MissingHandler) string {
	key := strings.TrimSpace(m.ID)
	fallback := strings.TrimSpace(m.DefaultMessage)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		return fallbackOrKey(fallback, key)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	return fallbackOrKey(fallback, key)
}

func fallbackOrKey(fallback, key string) string {
	if fallback != "" {
		return fallback
	}
	return key
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Sanitize strips markup from the default text and description so messages
// loaded from configuration files are always plain text.
func Sanitize(m Message) Message {
	p := strictPolicy()
	m.ID = strings.TrimSpace(m.ID)
	m.DefaultMessage = plainText(p, m.DefaultMessage)
	m.Description = plainText(p, m.Description)
	return m
}

// bluemonday escapes the text it keeps; undo that so apostrophes and
// ampersands in captions survive.
func plainText(p *bluemonday.Policy, raw string) string {
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(raw)))
}

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}
