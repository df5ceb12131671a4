package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcond/pkg/countries"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/message"
)

// Built-in fragment names available to every document.
const (
	FragmentPerson  = "person"
	FragmentAddress = "address"
)

// optionsFromCountries fills a select field from the country table.
const optionsFromCountries = "countries"

// LoaderOption configures LoadFS.
type LoaderOption func(*loader)

// WithCountries sets the table used for country options and the built-in
// fragments. Defaults to countries.ISO().
func WithCountries(table *countries.Table) LoaderOption {
	return func(l *loader) {
		if table != nil {
			l.countries = table
		}
	}
}

// WithHomeCountry enables the built-in address fragment, branched on code.
func WithHomeCountry(code string) LoaderOption {
	return func(l *loader) {
		l.homeCountry = strings.ToUpper(strings.TrimSpace(code))
	}
}

// WithFragment registers a Go-defined fragment under name. Document
// fragments with the same name take precedence.
func WithFragment(name string, fields []Field) LoaderOption {
	return func(l *loader) {
		l.builtin[name] = cloneFields(fields)
	}
}

type loader struct {
	countries   *countries.Table
	homeCountry string
	builtin     map[string][]Field
	fragments   map[string]fragmentFile
}

// LoadFS walks fsys for JSON/YAML form documents and returns the versions
// they define, in file then document order. Fragments are shared across
// files. Every version is validated; problems in all of them are reported
// together.
func LoadFS(fsys fs.FS, options ...LoaderOption) ([]*Version, error) {
	l := &loader{
		countries: countries.ISO(),
		builtin:   make(map[string][]Field),
		fragments: make(map[string]fragmentFile),
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	if _, ok := l.builtin[FragmentPerson]; !ok {
		l.builtin[FragmentPerson] = PersonFields(l.countries)
	}
	if _, ok := l.builtin[FragmentAddress]; !ok && l.homeCountry != "" {
		l.builtin[FragmentAddress] = AddressFields(l.countries, l.homeCountry)
	}
	if fsys == nil {
		return nil, nil
	}

	type sourced struct {
		file   versionFile
		source string
	}
	var pending []sourced

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFormFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("form: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(doc.Fragments))
		for name := range doc.Fragments {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("form: file %s defines an empty fragment name", path)
			}
			if _, exists := l.fragments[trimmed]; exists {
				return fmt.Errorf("form: duplicate fragment %q (file %s)", trimmed, path)
			}
			l.fragments[trimmed] = doc.Fragments[name]
		}
		for _, v := range doc.Forms {
			pending = append(pending, sourced{file: v, source: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var (
		out  []*Version
		errs []error
		seen = make(map[string]string)
	)
	for _, item := range pending {
		if prev, dup := seen[item.file.ID]; dup {
			errs = append(errs, fmt.Errorf("form: duplicate version %q (files %s and %s)", item.file.ID, prev, item.source))
			continue
		}
		seen[item.file.ID] = item.source

		version, err := l.build(item.file)
		if err != nil {
			errs = append(errs, fmt.Errorf("form: %s: %w", item.source, err))
			continue
		}
		if err := version.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, version)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

type documentFile struct {
	Fragments map[string]fragmentFile `json:"fragments" yaml:"fragments"`
	Forms     []versionFile           `json:"forms" yaml:"forms"`
}

type fragmentFile struct {
	Fields []entryFile `json:"fields" yaml:"fields"`
}

type versionFile struct {
	ID        string          `json:"id" yaml:"id"`
	EventType string          `json:"eventType" yaml:"eventType"`
	Label     message.Message `json:"label" yaml:"label"`
	Active    bool            `json:"active" yaml:"active"`
	Pages     []pageFile      `json:"pages" yaml:"pages"`
}

type pageFile struct {
	ID     string          `json:"id" yaml:"id"`
	Title  message.Message `json:"title" yaml:"title"`
	Fields []entryFile     `json:"fields" yaml:"fields"`
}

// entryFile is a field, a fragment include or a country branch. On an
// include the conditionals are grafted onto every included field.
type entryFile struct {
	Field       `yaml:",inline"`
	Include     string         `json:"include,omitempty" yaml:"include,omitempty"`
	Prefix      fieldpath.Path `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Branch      *branchFile    `json:"branch,omitempty" yaml:"branch,omitempty"`
	OptionsFrom string         `json:"optionsFrom,omitempty" yaml:"optionsFrom,omitempty"`
}

type branchFile struct {
	Country  fieldpath.Path `json:"country" yaml:"country"`
	Code     string         `json:"code" yaml:"code"`
	Generic  []entryFile    `json:"generic" yaml:"generic"`
	Specific []entryFile    `json:"specific" yaml:"specific"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("form: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("form: parse %s: %w", source, err)
	}
	return doc, nil
}

func (l *loader) build(raw versionFile) (*Version, error) {
	v := &Version{
		ID:        strings.TrimSpace(raw.ID),
		EventType: strings.TrimSpace(raw.EventType),
		Label:     message.Sanitize(raw.Label),
		Active:    raw.Active,
	}
	for _, rawPage := range raw.Pages {
		fields, err := l.expand(rawPage.Fields, nil)
		if err != nil {
			return nil, fmt.Errorf("version %s page %s: %w", v.ID, rawPage.ID, err)
		}
		v.Pages = append(v.Pages, Page{
			ID:     strings.TrimSpace(rawPage.ID),
			Title:  message.Sanitize(rawPage.Title),
			Fields: fields,
		})
	}
	return v, nil
}

func (l *loader) expand(entries []entryFile, stack []string) ([]Field, error) {
	var out []Field
	for _, entry := range entries {
		switch {
		case entry.Include != "":
			fields, err := l.include(entry.Include, stack)
			if err != nil {
				return nil, err
			}
			if !entry.Prefix.IsZero() {
				fields = Prefix(fields, entry.Prefix)
			}
			if len(entry.Conditionals) > 0 {
				fields = AppendConditionals(fields, entry.Conditionals...)
			}
			out = append(out, fields...)
		case entry.Branch != nil:
			generic, err := l.expand(entry.Branch.Generic, stack)
			if err != nil {
				return nil, err
			}
			specific, err := l.expand(entry.Branch.Specific, stack)
			if err != nil {
				return nil, err
			}
			if entry.Branch.Country.IsZero() {
				return nil, &ConfigError{Err: ErrInvalidField, Detail: "branch without country field"}
			}
			out = append(out, CountryBranch(entry.Branch.Country, strings.ToUpper(entry.Branch.Code), generic, specific)...)
		default:
			f := entry.Field.Clone()
			if strings.EqualFold(entry.OptionsFrom, optionsFromCountries) {
				f.Options = CountryOptions(l.countries)
			} else if entry.OptionsFrom != "" {
				return nil, &ConfigError{Field: f.ID, Err: ErrInvalidField, Detail: fmt.Sprintf("unknown option source %q", entry.OptionsFrom)}
			}
			out = append(out, sanitizeField(f))
		}
	}
	return out, nil
}

func (l *loader) include(name string, stack []string) ([]Field, error) {
	for i, seen := range stack {
		if seen == name {
			chain := append(append([]string(nil), stack[i:]...), name)
			return nil, &ConfigError{Err: ErrFragmentCycle, Detail: strings.Join(chain, " -> ")}
		}
	}
	if frag, ok := l.fragments[name]; ok {
		return l.expand(frag.Fields, append(append([]string(nil), stack...), name))
	}
	if fields, ok := l.builtin[name]; ok {
		return cloneFields(fields), nil
	}
	return nil, &ConfigError{Err: ErrInvalidField, Detail: fmt.Sprintf("unknown fragment %q", name)}
}

func sanitizeField(f Field) Field {
	f.Label = message.Sanitize(f.Label)
	for i := range f.Options {
		f.Options[i].Label = message.Sanitize(f.Options[i].Label)
	}
	for i := range f.Validation {
		f.Validation[i].Message = message.Sanitize(f.Validation[i].Message)
	}
	return f
}

func isFormFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
