package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/registry"
)

const openAPIVersion = "3.0.3"

// Info carries the document-level metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Option customises Export.
type Option func(*exportConfig)

type exportConfig struct {
	builder    model.Builder
	decorators []model.Decorator
}

// WithBuilder replaces the form builder used to derive endpoints and fields.
func WithBuilder(builder model.Builder) Option {
	return func(cfg *exportConfig) {
		if builder != nil {
			cfg.builder = builder
		}
	}
}

// WithDecorators runs decorators (for example UI overlays) before each form
// is described, so titles and labels match what users see.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(cfg *exportConfig) {
		for _, d := range decorators {
			if d != nil {
				cfg.decorators = append(cfg.decorators, d)
			}
		}
	}
}

// Export builds an OpenAPI document with one operation per registry entry.
func Export(reg *registry.Registry, info Info, options ...Option) (*openapi3.T, error) {
	if reg == nil {
		return nil, errors.New("openapi: registry is nil")
	}
	cfg := exportConfig{builder: model.NewBuilder()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if info.Title == "" {
		info.Title = "opsform"
	}
	if info.Version == "" {
		info.Version = "0.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	err := reg.Each(func(category string, op operation.Operation) error {
		form, err := cfg.builder.Build(category, op)
		if err != nil {
			return err
		}
		for _, decorator := range cfg.decorators {
			if err := decorator.Decorate(&form); err != nil {
				return fmt.Errorf("decorate %s: %w", form.ID, err)
			}
		}
		if form.Method != http.MethodPost {
			return fmt.Errorf("form %s: unsupported method %q", form.ID, form.Method)
		}
		doc.Paths.Set(form.Endpoint, &openapi3.PathItem{Post: describeOperation(form)})
		doc.Tags = appendTag(doc.Tags, category)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	return doc, nil
}

func describeOperation(form model.FormModel) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = form.ID
	op.Summary = form.Summary
	op.Description = form.Description
	op.Tags = []string{form.Category}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchema(RequestSchema(form)),
	}

	result := openapi3.NewObjectSchema()
	result.Nullable = true
	result.Description = "Result returned by the admin API; null when it returns no body."

	errorsSchema := openapi3.NewObjectSchema().WithProperty("errors",
		openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())))

	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Operation completed").WithJSONSchema(result),
		}),
		openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Validation failed").WithJSONSchema(errorsSchema),
		}),
	)
	return op
}

// RequestSchema describes the submission body of form.
func RequestSchema(form model.FormModel) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, field := range form.Fields {
		schema.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			required = append(required, field.Name)
		}
	}
	schema.Required = required
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	if field.IsSelect() {
		schema = optionSchema(field)
		if field.Multiple {
			schema = openapi3.NewArraySchema().WithItems(schema).WithUniqueItems(true)
			if field.Required {
				schema.WithMinItems(1)
			}
		}
	} else {
		schema = inputSchema(field)
	}
	schema.Title = field.Label
	schema.Description = field.Description
	return schema
}

func inputSchema(field model.Field) *openapi3.Schema {
	switch field.InputKind {
	case operation.KindNumber:
		return openapi3.NewFloat64Schema()
	case operation.KindCheckbox:
		return openapi3.NewBoolSchema()
	case operation.KindEmail:
		return openapi3.NewStringSchema().WithFormat("email")
	case operation.KindPassword:
		s := openapi3.NewStringSchema().WithFormat("password")
		s.WriteOnly = true
		return s
	default:
		s := openapi3.NewStringSchema()
		if field.Required {
			s.WithMinLength(1)
		}
		return s
	}
}

func optionSchema(field model.Field) *openapi3.Schema {
	choices := field.Choices()
	values := make([]any, 0, len(choices))
	for _, opt := range choices {
		values = append(values, opt.Value.Interface())
	}
	var schema *openapi3.Schema
	if field.Type == model.FieldTypeNumber || (field.Multiple && numericChoices(choices)) {
		schema = openapi3.NewFloat64Schema()
	} else {
		schema = openapi3.NewStringSchema()
	}
	return schema.WithEnum(values...)
}

func numericChoices(choices []model.Option) bool {
	if len(choices) == 0 {
		return false
	}
	for _, opt := range choices {
		if !opt.Value.IsNumber() {
			return false
		}
	}
	return true
}

func appendTag(tags openapi3.Tags, name string) openapi3.Tags {
	if tags.Get(name) != nil {
		return tags
	}
	return append(tags, &openapi3.Tag{Name: name})
}

// MarshalJSON renders doc as indented JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("openapi: indent json: %w", err)
	}
	return out.Bytes(), nil
}

// MarshalYAML renders doc as YAML, keeping the key order of the JSON form.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("openapi: convert to yaml: %w", err)
	}
	clearStyle(&node)

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return out.Bytes(), nil
}

// clearStyle drops the flow style inherited from the JSON input so the
// output reads as block YAML.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
