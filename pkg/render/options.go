package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Action overrides the form endpoint used as the submit target.
	Action string
	// Values pre-populates controls, keyed by field name. Select fields match
	// option values by their string form; checkboxes are checked when the
	// first value is truthy.
	Values map[string][]string
	// Errors surfaces validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not tied to a field.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs in name order.
	HiddenFields map[string]string
	// Result is the payload returned by a successful invocation. Renderers
	// that support it show it below the form.
	Result map[string]any
	// Locale and Translator localise labels, descriptions and placeholders.
	Locale     string
	Translator Translator
	// Theme carries the resolved theme tokens, CSS variables and partial
	// overrides. Nil renders the built-in look.
	Theme *theme.RendererConfig
}

// HasErrors reports whether any field or form error is present.
func (o RenderOptions) HasErrors() bool {
	return len(o.Errors) > 0 || len(o.FormErrors) > 0
}

// Value returns the first prefilled value for name.
func (o RenderOptions) Value(name string) string {
	if vals := o.Values[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}
