// Package form defines declaration form versions and the tools that build
// them: reusable field fragments, conditional grafting, country-branched
// address groups, static validation, a YAML/JSON loader and a version
// registry.
package form

import (
	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

// FieldType enumerates the supported input and display field types.
type FieldType string

const (
	TypeText       FieldType = "TEXT"
	TypeEmail      FieldType = "EMAIL"
	TypeSelect     FieldType = "SELECT"
	TypeRadioGroup FieldType = "RADIO_GROUP"
	TypeDate       FieldType = "DATE"
	TypeCheckbox   FieldType = "CHECKBOX"
	TypeLocation   FieldType = "LOCATION"
	TypeFile       FieldType = "FILE"
	TypeParagraph  FieldType = "PARAGRAPH"
	TypeBulletList FieldType = "BULLET_LIST"
)

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeEmail, TypeSelect, TypeRadioGroup, TypeDate, TypeCheckbox,
		TypeLocation, TypeFile, TypeParagraph, TypeBulletList:
		return true
	default:
		return false
	}
}

// DisplayOnly reports whether the field renders content but never holds an
// answer.
func (t FieldType) DisplayOnly() bool {
	return t == TypeParagraph || t == TypeBulletList
}

// HasOptions reports whether the field picks from a declared option list.
func (t FieldType) HasOptions() bool {
	return t == TypeSelect || t == TypeRadioGroup
}

// Structured reports whether the field value is an object whose members may
// be referenced by predicates (e.g. documents.proof.type).
func (t FieldType) Structured() bool {
	return t == TypeLocation || t == TypeFile
}

// Effect is what a conditional does when its predicate holds.
type Effect string

// EffectHide hides the field. It is the only effect in use.
const EffectHide Effect = "HIDE"

// Conditional hides a field while its predicate evaluates true.
type Conditional struct {
	Type      Effect          `json:"type" yaml:"type"`
	Predicate *predicate.Node `json:"conditional" yaml:"conditional"`
}

// Hide builds a HIDE conditional.
func Hide(p *predicate.Node) Conditional {
	return Conditional{Type: EffectHide, Predicate: p}
}

// Clone deep-copies the conditional.
func (c Conditional) Clone() Conditional {
	return Conditional{Type: c.Type, Predicate: c.Predicate.Clone()}
}

// ValidationRule fails, producing Message, when Predicate evaluates false.
type ValidationRule struct {
	Predicate *predicate.Node `json:"validator" yaml:"validator"`
	Message   message.Message `json:"message" yaml:"message"`
}

// Option is a selectable value of a SELECT or RADIO_GROUP field.
type Option struct {
	Value string          `json:"value" yaml:"value"`
	Label message.Message `json:"label" yaml:"label"`
}

// Field is a single slot of a form.
type Field struct {
	ID           fieldpath.Path    `json:"id" yaml:"id"`
	Type         FieldType         `json:"type" yaml:"type"`
	Required     bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Label        message.Message   `json:"label" yaml:"label"`
	Options      []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Validation   []ValidationRule  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Conditionals []Conditional     `json:"conditionals,omitempty" yaml:"conditionals,omitempty"`
	Default      any               `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.ID = f.ID.Clone()
	if f.Options != nil {
		out.Options = append([]Option(nil), f.Options...)
	}
	if f.Validation != nil {
		out.Validation = make([]ValidationRule, len(f.Validation))
		for i, rule := range f.Validation {
			out.Validation[i] = ValidationRule{Predicate: rule.Predicate.Clone(), Message: rule.Message}
		}
	}
	if f.Conditionals != nil {
		out.Conditionals = make([]Conditional, len(f.Conditionals))
		for i, cond := range f.Conditionals {
			out.Conditionals[i] = cond.Clone()
		}
	}
	if f.Metadata != nil {
		out.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Page groups fields under a title.
type Page struct {
	ID     string          `json:"id" yaml:"id"`
	Title  message.Message `json:"title" yaml:"title"`
	Fields []Field         `json:"fields" yaml:"fields"`
}

// Clone deep-copies the page.
func (p Page) Clone() Page {
	return Page{ID: p.ID, Title: p.Title, Fields: cloneFields(p.Fields)}
}

// Version is one published schema for an event type.
type Version struct {
	ID        string          `json:"id" yaml:"id"`
	EventType string          `json:"eventType" yaml:"eventType"`
	Label     message.Message `json:"label" yaml:"label"`
	Active    bool            `json:"active,omitempty" yaml:"active,omitempty"`
	Pages     []Page          `json:"pages" yaml:"pages"`
}

// Clone deep-copies the version.
func (v *Version) Clone() *Version {
	if v == nil {
		return nil
	}
	out := *v
	if v.Pages != nil {
		out.Pages = make([]Page, len(v.Pages))
		for i, page := range v.Pages {
			out.Pages[i] = page.Clone()
		}
	}
	return &out
}

// Fields returns every field in document order.
func (v *Version) Fields() []Field {
	if v == nil {
		return nil
	}
	var out []Field
	for _, page := range v.Pages {
		out = append(out, page.Fields...)
	}
	return out
}

// Field finds a field by path.
func (v *Version) Field(path fieldpath.Path) (Field, bool) {
	if v == nil {
		return Field{}, false
	}
	for _, page := range v.Pages {
		for _, f := range page.Fields {
			if f.ID.Equal(path) {
				return f, true
			}
		}
	}
	return Field{}, false
}

// Defaults collects configured default values keyed by canonical path, for
// use with valuestore.Store.Prefill.
func (v *Version) Defaults() map[string]any {
	out := make(map[string]any)
	for _, f := range v.Fields() {
		if f.Default == nil || f.Type.DisplayOnly() {
			continue
		}
		out[f.ID.String()] = f.Default
	}
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}
