package model

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/goliatone/go-opsform/pkg/operation"
)

var (
	errCategoryMissing  = errors.New("model builder: category is required")
	errOperationMissing = errors.New("model builder: operation name is required")
)

// Builder converts registry operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.EndpointPrefix != "" {
		opts.EndpointPrefix = options.EndpointPrefix
	}
	return &Builder{opts: opts}
}

// Build produces one Field per parameter, in parameter order.
func (b *Builder) Build(category string, op operation.Operation) (FormModel, error) {
	if strings.TrimSpace(category) == "" {
		return FormModel{}, errCategoryMissing
	}
	if strings.TrimSpace(op.Name) == "" {
		return FormModel{}, errOperationMissing
	}
	if err := op.Validate(); err != nil {
		return FormModel{}, fmt.Errorf("model builder: %w", err)
	}

	form := FormModel{
		ID:          FormID(category, op.Name),
		Category:    category,
		Operation:   op.Name,
		Endpoint:    path.Join("/", b.opts.EndpointPrefix, category, op.Name),
		Method:      http.MethodPost,
		Summary:     b.opts.Labeler(op.Name),
		Description: op.Desc,
		Fields:      make([]Field, 0, len(op.Params)),
	}

	for i, param := range op.Params {
		field, err := b.fieldFromParam(i, param)
		if err != nil {
			return FormModel{}, err
		}
		form.Fields = append(form.Fields, field)
	}
	return form, nil
}

func (b *Builder) fieldFromParam(position int, param operation.Param) (Field, error) {
	field := Field{
		Name:     param.Name,
		Label:    b.opts.Labeler(param.Name),
		Position: position,
		Required: param.UI.IsRequired(),
	}

	switch ui := param.UI.(type) {
	case operation.InputText:
		field.Control = ControlInput
		field.InputKind = ui.Kind
		field.Type = typeForKind(ui.Kind)
		if ui.Kind != operation.KindText {
			field.UIHints = map[string]string{"inputType": string(ui.Kind)}
		}
		if ui.Kind == operation.KindPassword {
			field.Metadata = map[string]string{"sensitive": "true"}
		}
	case operation.Select:
		field.Control = ControlSelect
		field.Multiple = ui.Multiple
		field.Type = FieldTypeString
		if ui.Numeric() {
			field.Type = FieldTypeNumber
		}
		if ui.Multiple {
			field.Type = FieldTypeArray
		}
		field.Options = make([]Option, 0, len(ui.Options))
		for _, opt := range ui.Options {
			field.Options = append(field.Options, Option{
				Label:       opt.Text,
				Value:       opt.Value,
				Placeholder: opt.IsPlaceholder(),
			})
		}
	default:
		return Field{}, fmt.Errorf("model builder: param %q: unsupported ui hint %T", param.Name, param.UI)
	}

	field.normalize()
	return field, nil
}

func typeForKind(kind operation.InputKind) FieldType {
	switch kind {
	case operation.KindNumber:
		return FieldTypeNumber
	case operation.KindCheckbox:
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}
