package uischema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
)

// IconMetadataKey holds the sanitised SVG icon of a form.
const IconMetadataKey = "icon"

// Decorator applies overlay presentation to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form model with its overlay. When no
// overlay matches the form id the form is left untouched. An overlay naming
// a field the operation does not declare is an error.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	op, ok := d.store.Operation(form.ID)
	if !ok {
		return nil
	}

	if err := checkFields(form, op); err != nil {
		return err
	}
	applyFormConfig(form, op.Form)

	fields := make([]model.Field, len(form.Fields))
	copy(fields, form.Fields)
	for i := range fields {
		cfg, ok := op.Fields[fields[i].Name]
		if !ok {
			continue
		}
		applyFieldConfig(&fields[i], cfg)
	}
	form.Fields = fields
	return nil
}

func checkFields(form *model.FormModel, op Operation) error {
	var unknown []string
	for name := range op.Fields {
		if _, ok := form.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("uischema: operation %q (file %s) configures unknown field(s): %s",
		op.ID, op.Source, strings.Join(unknown, ", "))
}

func applyFormConfig(form *model.FormModel, cfg FormConfig) {
	if title := strings.TrimSpace(cfg.Title); title != "" {
		form.Summary = title
	}
	if desc := strings.TrimSpace(cfg.Description); desc != "" {
		form.Description = desc
	}

	hints := mergeStringMap(form.UIHints, cfg.UIHints)
	if cfg.SubmitLabel != "" {
		hints = ensure(hints)
		hints["submitLabel"] = cfg.SubmitLabel
	}
	if cfg.SuccessMessage != "" {
		hints = ensure(hints)
		hints["successMessage"] = cfg.SuccessMessage
	}
	form.UIHints = model.FilterUIHints(hints)

	form.Metadata = mergeStringMap(form.Metadata, cfg.Metadata)
	if icon := sanitizeIconMarkup(cfg.Icon); icon != "" {
		form.Metadata = ensure(form.Metadata)
		form.Metadata[IconMetadataKey] = icon
	}
}

func applyFieldConfig(field *model.Field, cfg FieldConfig) {
	field.UIHints = model.FilterUIHints(mergeStringMap(field.UIHints, cfg.hints()))
	field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
	if desc := strings.TrimSpace(cfg.Description); desc != "" {
		field.Description = desc
	}
	field.ApplyUIHintAttributes()
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return cloneStrings(dst)
	}
	out := make(map[string]string, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

func ensure(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}
