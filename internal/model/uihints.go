package model

import "sort"

var (
	uiHintKeys = []string{
		"autocomplete",
		"cssClass",
		"helpText",
		"hideLabel",
		"inputType",
		"label",
		"placeholder",
		"section",
		"submitLabel",
		"successMessage",
		"widget",
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// AllowedUIHintKeys returns a sorted copy of the recognised UI hint keys.
func AllowedUIHintKeys() []string {
	keys := append([]string(nil), uiHintKeys...)
	sort.Strings(keys)
	return keys
}

// IsAllowedUIHintKey reports whether key participates in the UI hint
// contract shared by builders, overlays and renderers.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// FilterUIHints keeps the allowed, non-empty hints. It returns nil when
// nothing survives.
func FilterUIHints(hints map[string]string) map[string]string {
	if len(hints) == 0 {
		return nil
	}
	result := make(map[string]string)
	for key, value := range hints {
		if value == "" || !IsAllowedUIHintKey(key) {
			continue
		}
		result[key] = value
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// ApplyUIHintAttributes copies label, placeholder and helpText hints onto
// the field's first-class attributes.
func (f *Field) ApplyUIHintAttributes() {
	if len(f.UIHints) == 0 {
		return
	}
	if label := f.UIHints["label"]; label != "" {
		f.Label = label
	}
	if placeholder := f.UIHints["placeholder"]; placeholder != "" {
		f.Placeholder = placeholder
	}
	if help := f.UIHints["helpText"]; help != "" && f.Description == "" {
		f.Description = help
	}
}

func (f *Field) normalize() {
	if len(f.Metadata) == 0 {
		f.Metadata = nil
	}
	if len(f.UIHints) == 0 {
		f.UIHints = nil
	}
}
