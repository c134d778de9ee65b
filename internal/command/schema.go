package command

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

const schemaDraft = "http://json-schema.org/draft-07/schema#"

// Validator checks command parameters against JSON Schemas compiled from
// the catalog.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles one schema per pipeline command.
func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, spec := range Commands() {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(SchemaFor(spec)))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", spec.Name, err)
		}
		v.schemas[spec.Name] = schema
	}
	return v, nil
}

// Validate checks every command in order and returns the first failure as a
// validation *domain.ScriptError attributed to the command's line.
func (v *Validator) Validate(cmds []Command) error {
	for _, c := range cmds {
		if err := v.ValidateOne(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOne checks a single command.
func (v *Validator) ValidateOne(c Command) error {
	schema, ok := v.schemas[c.Name]
	if !ok {
		return domain.NewValidationError(c.Line, "unknown command %q", c.Name)
	}

	params := c.Params
	if params == nil {
		params = map[string]any{}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return &domain.ScriptError{
			Kind:    domain.ErrorValidation,
			Message: fmt.Sprintf("%s: parameters could not be checked", c.Name),
			Line:    c.Line,
			Details: err.Error(),
		}
	}
	if result.Valid() {
		return nil
	}

	errs := result.Errors()
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		details = append(details, e.String())
	}
	return &domain.ScriptError{
		Kind:    domain.ErrorValidation,
		Message: fmt.Sprintf("%s: %s", c.Name, describe(errs[0])),
		Line:    c.Line,
		Details: strings.Join(details, "; "),
	}
}

func describe(e gojsonschema.ResultError) string {
	field := e.Field()
	if field == "" || field == "(root)" {
		return e.Description()
	}
	return fmt.Sprintf("parameter %q: %s", field, e.Description())
}

// SchemaFor builds the JSON Schema document for a command's parameters.
func SchemaFor(spec Spec) map[string]any {
	props := make(map[string]any, len(spec.Parameters))
	required := []string{}
	for _, p := range spec.Parameters {
		props[p.Name] = paramSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"$schema":              schemaDraft,
		"title":                spec.Name,
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func paramSchema(p Parameter) map[string]any {
	var item map[string]any
	switch p.Type {
	case ParamNumber:
		item = map[string]any{"type": "number"}
		if p.Positive {
			item["exclusiveMinimum"] = 0
		}
	case ParamPoint:
		item = pointSchema()
	case ParamShape:
		item = map[string]any{"type": "string", "minLength": 1}
	default:
		item = map[string]any{"type": "string"}
		if p.NonEmpty {
			item["minLength"] = 1
		}
	}
	if len(p.Enum) > 0 {
		enum := make([]any, len(p.Enum))
		for i, e := range p.Enum {
			enum[i] = e
		}
		item["enum"] = enum
	}
	if p.Description != "" {
		item["description"] = p.Description
	}

	if !p.Repeated {
		return item
	}
	list := map[string]any{"type": "array", "items": item}
	if p.MinItems > 0 {
		list["minItems"] = p.MinItems
	}
	return list
}

func pointSchema() map[string]any {
	return map[string]any{
		"oneOf": []any{
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"x": map[string]any{"type": "number"},
					"y": map[string]any{"type": "number"},
				},
				"required": []any{"x", "y"},
			},
			map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "number"},
				"minItems": 2,
				"maxItems": 2,
			},
		},
	}
}
