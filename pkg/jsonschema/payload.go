// Package jsonschema derives a JSON Schema for the payload of one resolution
// pass. Unlike the static export in pkg/openapi, the schema only admits the
// fields that are visible in that pass and requires exactly the fields that
// are required right now, so it can double check a submission payload before
// it leaves the engine.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/resolver"
)

// ErrPayloadInvalid is wrapped by every payload validation failure.
var ErrPayloadInvalid = errors.New("jsonschema: payload does not match resolved form")

// ForResult builds the payload schema for res, a pass over v.
func ForResult(v *form.Version, res resolver.Result) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Title:      res.Version,
		Properties: make(map[string]*jsonschema.Schema),
		// A schema that matches nothing forbids unknown properties.
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
	for _, state := range res.Fields {
		if !state.Visible || state.DisplayOnly {
			continue
		}
		key := state.Path.String()
		field, ok := v.Field(state.Path)
		if !ok {
			field = form.Field{ID: state.Path, Type: state.Type}
		}
		schema.Properties[key] = FieldSchema(field)
		if state.RequiredNow {
			schema.Required = append(schema.Required, key)
		}
	}
	return schema
}

// FieldSchema maps one field to the schema of its value.
func FieldSchema(f form.Field) *jsonschema.Schema {
	schema := &jsonschema.Schema{Title: f.Label.DefaultMessage}
	switch f.Type {
	case form.TypeCheckbox:
		schema.Type = "boolean"
	case form.TypeDate:
		schema.Type = "string"
		schema.Format = "date"
	case form.TypeEmail:
		schema.Type = "string"
		schema.Format = "email"
	case form.TypeFile:
		schema.Type = "object"
	case form.TypeLocation:
		// a location id, or the resolved location object
		schema.Types = []string{"object", "string"}
	default:
		schema.Type = "string"
	}
	if f.Type.HasOptions() {
		for _, opt := range f.Options {
			schema.Enum = append(schema.Enum, opt.Value)
		}
	}
	return schema
}

// Validate resolves schema and checks payload against it.
func Validate(schema *jsonschema.Schema, payload map[string]any) error {
	if schema == nil {
		return fmt.Errorf("jsonschema: nil schema")
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return fmt.Errorf("jsonschema: resolve: %w", err)
	}
	instance, err := normalise(payload)
	if err != nil {
		return err
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("%w: %w", ErrPayloadInvalid, err)
	}
	return nil
}

// ValidatePayload is ForResult followed by Validate.
func ValidatePayload(v *form.Version, res resolver.Result, payload map[string]any) error {
	return Validate(ForResult(v, res), payload)
}

// normalise round-trips payload through JSON so Go values take the shapes
// the validator expects.
func normalise(payload map[string]any) (map[string]any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("jsonschema: decode payload: %w", err)
	}
	return out, nil
}
