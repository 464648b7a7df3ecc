package render

import (
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string) (string, error)

// Translate calls fn.
func (fn TranslatorFunc) Translate(locale, key string) (string, error) {
	return fn(locale, key)
}

// MessageKey returns the translation key for a form element, for example
// MessageKey("user.create", "fields", "email", "label") yields
// "user.create.fields.email.label". Spaces in names become underscores.
func MessageKey(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ReplaceAll(strings.TrimSpace(part), " ", "_")
		if part != "" {
			clean = append(clean, part)
		}
	}
	return strings.Join(clean, ".")
}

// LocalizeFormModel translates the summary, description, field labels,
// descriptions, placeholders and option labels. Fields and options are
// copied first so slices shared with the caller stay untouched. Keys are
// derived with MessageKey from the form ID; a missing or failing translation
// keeps the existing text.
func LocalizeFormModel(form *model.FormModel, opts RenderOptions) {
	if form == nil || opts.Translator == nil {
		return
	}
	tr := func(key, fallback string) string {
		result, err := opts.Translator.Translate(opts.Locale, key)
		if err != nil || strings.TrimSpace(result) == "" {
			return fallback
		}
		return result
	}

	fields := make([]model.Field, len(form.Fields))
	for i, field := range form.Fields {
		field.Options = append([]model.Option(nil), field.Options...)
		fields[i] = field
	}
	form.Fields = fields

	form.Summary = tr(MessageKey(form.ID, "summary"), form.Summary)
	form.Description = tr(MessageKey(form.ID, "description"), form.Description)

	for i := range form.Fields {
		field := &form.Fields[i]
		base := MessageKey(form.ID, "fields", field.Name)
		field.Label = tr(MessageKey(base, "label"), field.Label)
		field.Description = tr(MessageKey(base, "description"), field.Description)
		field.Placeholder = tr(MessageKey(base, "placeholder"), field.Placeholder)
		for j := range field.Options {
			opt := &field.Options[j]
			if opt.Placeholder {
				continue
			}
			opt.Label = tr(MessageKey(base, "options", opt.Value.String()), opt.Label)
		}
	}
}
