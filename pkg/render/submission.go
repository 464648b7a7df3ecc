package render

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved hidden field names. They never collide with operation params
// because the server strips them before decoding.
const (
	AuthTokenField = "_auth_token"
	CSRFField      = "_csrf"
)

// HiddenField represents a hidden form input emitted alongside the visible
// fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs the CSRF hidden field. An empty name uses CSRFField.
func CSRFToken(name, token string) HiddenField {
	if strings.TrimSpace(name) == "" {
		name = CSRFField
	}
	return Hidden(name, token)
}

// AuthToken constructs the hidden field carrying the admin API token for
// the next submission. An empty name uses AuthTokenField.
func AuthToken(name, token string) HiddenField {
	if strings.TrimSpace(name) == "" {
		name = AuthTokenField
	}
	return Hidden(name, token)
}

// SplitHidden removes the named entries from values and returns them as a
// separate map of first values. values is not modified.
func SplitHidden(values map[string][]string, names ...string) (map[string][]string, map[string]string) {
	reserved := make(map[string]struct{}, len(names))
	for _, name := range names {
		reserved[name] = struct{}{}
	}
	visible := make(map[string][]string, len(values))
	hidden := make(map[string]string)
	for key, vals := range values {
		if _, ok := reserved[key]; ok {
			if len(vals) > 0 {
				hidden[key] = vals[0]
			}
			continue
		}
		visible[key] = vals
	}
	return visible, hidden
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		clean[key] = value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: clean[name],
		})
	}
	return result
}
