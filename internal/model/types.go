package model

import "github.com/goliatone/go-opsform/pkg/operation"

// FieldType is the value type a field decodes to.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
)

// Control distinguishes the two parameter hint variants.
type Control string

const (
	ControlInput  Control = "input"
	ControlSelect Control = "select"
)

// Option is one selectable entry of a select field. Placeholder marks the
// empty "no selection yet" entry.
type Option struct {
	Label       string                `json:"label"`
	Value       operation.OptionValue `json:"value"`
	Placeholder bool                  `json:"placeholder,omitempty"`
}

// Field models one operation parameter. Position is the index of the
// parameter in the operation's param list; decoded arguments follow it.
type Field struct {
	Name        string              `json:"name"`
	Label       string              `json:"label,omitempty"`
	Position    int                 `json:"position"`
	Control     Control             `json:"control"`
	Type        FieldType           `json:"type"`
	InputKind   operation.InputKind `json:"inputKind,omitempty"`
	Required    bool                `json:"required"`
	Multiple    bool                `json:"multiple,omitempty"`
	Options     []Option            `json:"options,omitempty"`
	Placeholder string              `json:"placeholder,omitempty"`
	Description string              `json:"description,omitempty"`
	UIHints     map[string]string   `json:"uiHints,omitempty"`
	Metadata    map[string]string   `json:"metadata,omitempty"`
}

// IsSelect reports whether the field renders as a select.
func (f Field) IsSelect() bool { return f.Control == ControlSelect }

// Choices returns the non-placeholder options.
func (f Field) Choices() []Option {
	out := make([]Option, 0, len(f.Options))
	for _, opt := range f.Options {
		if opt.Placeholder {
			continue
		}
		out = append(out, opt)
	}
	return out
}

// FormModel is the renderer-facing view of one operation.
type FormModel struct {
	ID          string            `json:"id"`
	Category    string            `json:"category"`
	Operation   string            `json:"operation"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Field returns the field named name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FormID joins category and operation into the canonical form identifier.
func FormID(category, name string) string {
	return category + "." + name
}
