package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcond/pkg/form"
)

const (
	openAPIVersion = "3.0.3"

	extensionMessage  = "x-formcond-message"
	extensionHide     = "x-formcond-hide"
	extensionRequired = "x-formcond-required"
	extensionVersion  = "x-formcond-version"
	extensionEvent    = "x-formcond-event"
)

// Schema describes the payload of v. Every value field becomes a property
// keyed by its canonical path. Only fields that are required and can never
// be hidden are listed in required; conditionally required fields carry
// x-formcond-required and their hide predicates in x-formcond-hide.
func Schema(v *form.Version) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = v.Label.DefaultMessage
	schema.Extensions = map[string]any{
		extensionVersion: v.ID,
		extensionEvent:   v.EventType,
	}
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}

	var required []string
	for _, f := range v.Fields() {
		if f.Type.DisplayOnly() {
			continue
		}
		key := f.ID.String()
		schema.Properties[key] = openapi3.NewSchemaRef("", FieldSchema(f))
		if f.Required && len(f.Conditionals) == 0 {
			required = append(required, key)
		}
	}
	sort.Strings(required)
	schema.Required = required
	return schema
}

// FieldSchema maps a single field to its value schema.
func FieldSchema(f form.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch f.Type {
	case form.TypeCheckbox:
		schema = openapi3.NewBoolSchema()
	case form.TypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case form.TypeEmail:
		schema = openapi3.NewStringSchema().WithFormat("email")
	case form.TypeSelect, form.TypeRadioGroup:
		values := make([]any, len(f.Options))
		for i, opt := range f.Options {
			values[i] = opt.Value
		}
		schema = openapi3.NewStringSchema().WithEnum(values...)
	case form.TypeFile:
		schema = openapi3.NewObjectSchema()
	case form.TypeLocation:
		schema = openapi3.NewOneOfSchema(openapi3.NewStringSchema(), openapi3.NewObjectSchema())
	default:
		schema = openapi3.NewStringSchema()
	}

	schema.Title = f.Label.DefaultMessage
	ext := map[string]any{}
	if f.Label.ID != "" {
		ext[extensionMessage] = f.Label.ID
	}
	if f.Required {
		ext[extensionRequired] = true
	}
	if len(f.Conditionals) > 0 {
		hide := make([]string, len(f.Conditionals))
		for i, cond := range f.Conditionals {
			hide[i] = cond.Predicate.String()
		}
		ext[extensionHide] = hide
	}
	if len(ext) > 0 {
		schema.Extensions = ext
	}
	if f.Default != nil {
		schema.Default = f.Default
	}
	return schema
}

// Document bundles the payload schemas of versions as components named after
// each version id.
func Document(title, version string, versions ...*form.Version) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(versions)),
		},
	}
	for _, v := range versions {
		if v == nil {
			continue
		}
		doc.Components.Schemas[v.ID] = openapi3.NewSchemaRef("", Schema(v))
	}
	return doc
}

// Marshal validates doc and encodes it as indented JSON.
func Marshal(ctx context.Context, doc *openapi3.T) ([]byte, error) {
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode: %w", err)
	}
	return data, nil
}

// Load parses a document produced by Marshal.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// ValidatePayload checks payload against schema. Values are normalised
// through JSON first so Go numeric types compare like decoded documents.
func ValidatePayload(schema *openapi3.Schema, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("openapi: encode payload: %w", err)
	}
	var normalised map[string]any
	if err := json.Unmarshal(data, &normalised); err != nil {
		return fmt.Errorf("openapi: decode payload: %w", err)
	}
	if err := schema.VisitJSON(normalised, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: payload: %w", err)
	}
	return nil
}
