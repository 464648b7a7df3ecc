package vanilla

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/render/template"
	"github.com/goliatone/go-opsform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-opsform/pkg/validation"
	"github.com/goliatone/go-opsform/pkg/widgets"
)

const (
	fieldChromeTemplate = "templates/components/chrome/field.tmpl"
	fieldChromePartial  = "forms.field"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	widgets   *widgets.Registry
	partials  map[string]string

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, widgetRegistry *widgets.Registry, partials map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		widgets:        widgetRegistry,
		partials:       partials,
		usedComponents: make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(formID string, field model.Field, opts render.RenderOptions) (string, error) {
	widget := r.widgetFor(field)
	descriptor, ok := r.registry.Descriptor(widget)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", widget, field.Name)
	}

	view := fieldView(formID, field, widget, opts)
	data := components.ComponentData{
		Template: r.templates,
		Partials: r.partials,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, view, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", widget, field.Name, err)
	}
	r.usedComponents[descriptor.Name] = struct{}{}

	chrome := fieldChromeTemplate
	if candidate := strings.TrimSpace(r.partials[fieldChromePartial]); candidate != "" {
		chrome = candidate
	}
	markup, err := r.templates.RenderTemplate(chrome, map[string]any{
		"field":   map[string]any(view),
		"control": control.String(),
		"classes": chromeClasses(),
	})
	if err != nil {
		return "", fmt.Errorf("render chrome for field %q: %w", field.Name, err)
	}
	return markup, nil
}

func (r *componentRenderer) widgetFor(field model.Field) string {
	if widget := strings.TrimSpace(field.UIHints["widget"]); widget != "" {
		return widget
	}
	if widget, ok := r.widgets.Resolve(field); ok {
		return widget
	}
	if field.IsSelect() {
		return widgets.WidgetSelect
	}
	return widgets.WidgetText
}

func (r *componentRenderer) stylesheets() []string {
	if len(r.usedComponents) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Stylesheets(names)
}

func fieldView(formID string, field model.Field, widget string, opts render.RenderOptions) components.FieldData {
	id := controlID(formID, field.Name)
	errs := opts.Errors[field.Name]
	raw := opts.Values[field.Name]

	view := components.FieldData{
		"name":          field.Name,
		"id":            id,
		"label":         field.Label,
		"widget":        widget,
		"type":          inputType(field),
		"required":      field.Required,
		"multiple":      field.Multiple,
		"placeholder":   field.Placeholder,
		"description":   sanitizeDescription(field.Description),
		"descriptionId": "",
		"errorId":       "",
		"autocomplete":  field.UIHints["autocomplete"],
		"hideLabel":     field.UIHints["hideLabel"] == "true",
		"cssClass":      sanitizeClassList(field.UIHints["cssClass"]),
		"value":         "",
		"checked":       false,
		"options":       []map[string]any{},
		"errors":        append([]string(nil), errs...),
		"invalid":       len(errs) > 0,
	}
	if view["description"] != "" {
		view["descriptionId"] = id + "-description"
	}
	if len(errs) > 0 {
		view["errorId"] = id + "-error"
	}

	switch {
	case field.IsSelect():
		view["options"] = optionViews(field, widget, raw)
	case field.InputKind == operation.KindCheckbox:
		decoded, err := validation.DecodeField(field, raw)
		view["checked"] = err == nil && decoded == true
	case isSensitive(field):
		// secrets are never echoed back into the page
	default:
		if len(raw) > 0 {
			view["value"] = raw[0]
		}
	}
	return view
}

func optionViews(field model.Field, widget string, raw []string) []map[string]any {
	chosen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		if value != "" {
			chosen[value] = struct{}{}
		}
	}
	// only a single <select> has room for the empty "choose" entry
	withPlaceholder := widget == widgets.WidgetSelect && !field.Multiple

	out := make([]map[string]any, 0, len(field.Options))
	for _, opt := range field.Options {
		if opt.Placeholder && !withPlaceholder {
			continue
		}
		value := opt.Value.String()
		_, selected := chosen[value]
		if opt.Placeholder {
			selected = len(chosen) == 0
		}
		out = append(out, map[string]any{
			"label":       opt.Label,
			"value":       value,
			"placeholder": opt.Placeholder,
			"selected":    selected,
		})
	}
	return out
}

func inputType(field model.Field) string {
	if field.IsSelect() {
		return ""
	}
	if hinted := strings.TrimSpace(field.UIHints["inputType"]); hinted != "" {
		return hinted
	}
	switch field.InputKind {
	case operation.KindEmail, operation.KindNumber, operation.KindPassword, operation.KindCheckbox:
		return string(field.InputKind)
	default:
		return "text"
	}
}

func isSensitive(field model.Field) bool {
	return field.InputKind == operation.KindPassword || field.Metadata["sensitive"] == "true"
}
