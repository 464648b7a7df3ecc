package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-opsform/pkg/widgets"
)

const templatePrefix = "templates/components/"

// PartialKey is the theme partial key that overrides the built-in template
// for widget.
func PartialKey(widget string) string {
	return "forms." + normalize(widget)
}

// NewDefaultRegistry constructs a registry with one template-backed component
// per built-in widget.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, name := range widgets.Builtins() {
		registry.MustRegister(name, Descriptor{
			Renderer: TemplateComponent(PartialKey(name), templatePrefix+name+".tmpl"),
		})
	}
	return registry
}

// TemplateComponent returns a renderer that executes templateName with the
// field view under "field". A theme partial registered under partialKey
// takes precedence.
func TemplateComponent(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field FieldData, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.Partials != nil {
			if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		rendered, err := data.Template.RenderTemplate(resolvedTemplate, map[string]any{
			"field": map[string]any(field),
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
