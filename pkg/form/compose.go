package form

import (
	"fmt"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

// AppendConditionals returns copies of fields whose conditional lists are
// extended with conds. The input slice is not modified.
func AppendConditionals(fields []Field, conds ...Conditional) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		clone := f.Clone()
		for _, cond := range conds {
			clone.Conditionals = append(clone.Conditionals, cond.Clone())
		}
		out[i] = clone
	}
	return out
}

// Prefix instantiates a fragment under prefix: relative field ids and every
// relative path inside conditionals and validation rules are rebased.
// Absolute paths are left alone, so a fragment may still reference fields
// outside its own group.
func Prefix(fields []Field, prefix fieldpath.Path) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		clone := f.Clone()
		clone.ID = clone.ID.Rebase(prefix)
		for j := range clone.Conditionals {
			clone.Conditionals[j].Predicate = predicate.Rebase(clone.Conditionals[j].Predicate, prefix)
		}
		for j := range clone.Validation {
			clone.Validation[j].Predicate = predicate.Rebase(clone.Validation[j].Predicate, prefix)
		}
		out[i] = clone
	}
	return out
}

// CountryBranch combines two variants of an address group so exactly one is
// visible for any value of countryField: specific when the value equals
// country, generic otherwise (including while the country is unanswered).
func CountryBranch(countryField fieldpath.Path, country string, generic, specific []Field) []Field {
	ref := predicate.FieldAt(countryField)
	isCountry := ref.IsEqualTo(country)

	out := make([]Field, 0, len(generic)+len(specific))
	out = append(out, AppendConditionals(generic, Hide(isCountry))...)
	out = append(out, AppendConditionals(specific, Hide(predicate.Not(isCountry.Clone())))...)
	return out
}

// Composer assembles a Version page by page and validates it on Build.
type Composer struct {
	version Version
	pages   map[string]int
	err     error
}

// NewComposer starts a version for eventType.
func NewComposer(id, eventType string) *Composer {
	return &Composer{
		version: Version{ID: id, EventType: eventType},
		pages:   make(map[string]int),
	}
}

// Label sets the version label.
func (c *Composer) Label(m message.Message) *Composer {
	c.version.Label = m
	return c
}

// Page appends a page made of the concatenated field groups. Calling Page
// again with an existing id appends to that page.
func (c *Composer) Page(id string, title message.Message, groups ...[]Field) *Composer {
	if c.err != nil {
		return c
	}
	if id == "" {
		c.err = fmt.Errorf("form: composer %s: empty page id", c.version.ID)
		return c
	}
	idx, ok := c.pages[id]
	if !ok {
		c.version.Pages = append(c.version.Pages, Page{ID: id, Title: title})
		idx = len(c.version.Pages) - 1
		c.pages[id] = idx
	}
	for _, group := range groups {
		c.version.Pages[idx].Fields = append(c.version.Pages[idx].Fields, cloneFields(group)...)
	}
	return c
}

// Build validates the composed version and returns an independent copy.
func (c *Composer) Build() (*Version, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := c.version.Validate(); err != nil {
		return nil, err
	}
	return c.version.Clone(), nil
}

// MustBuild is Build for static configuration; it panics on error.
func (c *Composer) MustBuild() *Version {
	v, err := c.Build()
	if err != nil {
		panic(err)
	}
	return v
}
