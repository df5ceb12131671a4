// Package report turns a resolution pass into something a clerk can read:
// a localized summary of what the declaration asks for right now and which
// answers still block submission. Reports render as text through a pongo2
// template or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/resolver"
)

// DefaultTemplate is the text layout used when no template is configured.
const DefaultTemplate = `{% autoescape off %}{{ report.Title }} [{{ report.Version }}]
{% for f in report.Fields %}{% if f.Visible %}  - {{ f.Path }}{% if f.Required %} *{% endif %}: {{ f.Label }}
{% for e in f.Errors %}      ! {{ e }}
{% endfor %}{% elif showHidden %}  ~ {{ f.Path }} (hidden){% if f.Warning %}: {{ f.Warning }}{% endif %}
{% endif %}{% endfor %}{% if report.Valid %}ready to submit{% else %}{{ report.Blocking }} field(s) block submission{% endif %}
{% endautoescape %}`

// Report is the localized view of one pass.
type Report struct {
	Version  string  `json:"version"`
	Title    string  `json:"title"`
	Locale   string  `json:"locale,omitempty"`
	Valid    bool    `json:"valid"`
	Blocking int     `json:"blocking"`
	Fields   []Field `json:"fields"`
}

// Field is one resolved field with its label and errors localized.
type Field struct {
	Path     string   `json:"path"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Visible  bool     `json:"visible"`
	Required bool     `json:"required"`
	Errors   []string `json:"errors,omitempty"`
	Warning  string   `json:"warning,omitempty"`
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLocale selects the locale passed to the translator.
func WithLocale(locale string) Option {
	return func(r *Renderer) {
		r.locale = strings.TrimSpace(locale)
	}
}

// WithTranslator resolves labels and error messages, typically a
// *message.Catalog.
func WithTranslator(t message.Translator) Option {
	return func(r *Renderer) {
		r.translator = t
	}
}

// WithTemplate replaces DefaultTemplate. The template sees `report` and
// `showHidden`.
func WithTemplate(source string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(source) != "" {
			r.source = source
		}
	}
}

// WithHidden includes hidden fields in text output.
func WithHidden(show bool) Option {
	return func(r *Renderer) {
		r.showHidden = show
	}
}

// Renderer builds and renders reports.
type Renderer struct {
	locale     string
	translator message.Translator
	source     string
	showHidden bool
	tpl        *pongo2.Template
}

// NewRenderer compiles the configured template.
func NewRenderer(options ...Option) (*Renderer, error) {
	r := &Renderer{source: DefaultTemplate}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	tpl, err := pongo2.FromString(r.source)
	if err != nil {
		return nil, fmt.Errorf("report: compile template: %w", err)
	}
	r.tpl = tpl
	return r, nil
}

// Build localizes res, a pass over v.
func (r *Renderer) Build(v *form.Version, res resolver.Result) Report {
	out := Report{
		Version: res.Version,
		Locale:  r.locale,
		Valid:   res.Valid(),
		Fields:  make([]Field, 0, len(res.Fields)),
	}
	if v != nil {
		out.Title = r.localize(v.Label)
		if out.Title == "" {
			out.Title = v.ID
		}
	}
	for _, state := range res.Fields {
		field := Field{
			Path:     state.Path.String(),
			Type:     string(state.Type),
			Visible:  state.Visible,
			Required: state.RequiredNow,
			Warning:  state.Warning,
		}
		if def, ok := v.Field(state.Path); ok {
			field.Label = r.localize(def.Label)
		}
		if state.Visible {
			for _, m := range state.Errors {
				field.Errors = append(field.Errors, r.localize(m))
			}
		}
		if !state.Valid() {
			out.Blocking++
		}
		out.Fields = append(out.Fields, field)
	}
	return out
}

// Text renders rep through the template.
func (r *Renderer) Text(w io.Writer, rep Report) error {
	ctx := pongo2.Context{
		"report":     rep,
		"showHidden": r.showHidden,
	}
	if err := r.tpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

// JSON writes rep as indented JSON.
func (r *Renderer) JSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}

func (r *Renderer) localize(m message.Message) string {
	return message.Localize(r.locale, m, r.translator, nil)
}
