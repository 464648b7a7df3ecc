package render

import (
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by field name.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// Apply copies the mapping into opts.
func (m ErrorMapping) Apply(opts *RenderOptions) {
	if opts == nil || m.Empty() {
		return
	}
	if len(m.Fields) > 0 {
		if opts.Errors == nil {
			opts.Errors = make(map[string][]string, len(m.Fields))
		}
		for name, messages := range m.Fields {
			opts.Errors[name] = append(opts.Errors[name], messages...)
		}
	}
	opts.FormErrors = MergeFormErrors(opts.FormErrors, m.Form...)
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload attaches payload messages to form fields. Keys may be the
// param name, its snake or camel case spelling ("full_name", "fullName"), or
// a pointer into a request wrapper ("/body/email", "data.email"). Keys that
// match no field become form-level errors so messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	index := make(map[string]string, len(form.Fields)*2)
	for _, field := range form.Fields {
		index[fieldKey(field.Name)] = field.Name
	}

	for rawKey, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name, ok := resolveErrorKey(rawKey, index)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolveErrorKey(raw string, index map[string]string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	segments := strings.FieldsFunc(strings.TrimLeft(trimmed, "#$/."), func(r rune) bool {
		return r == '/' || r == '.'
	})
	for len(segments) > 1 && isWrapperSegment(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "", false
	}
	name, ok := index[fieldKey(segments[0])]
	return name, ok
}

// fieldKey folds case and separators so "full name", "full_name" and
// "fullName" compare equal.
func fieldKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "params", "fields":
		return true
	default:
		return false
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
