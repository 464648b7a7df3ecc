package model

import internalmodel "github.com/goliatone/go-opsform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
)

// Control re-exports the input/select discriminator.
type Control = internalmodel.Control

const (
	ControlInput  = internalmodel.ControlInput
	ControlSelect = internalmodel.ControlSelect
)

type Option = internalmodel.Option
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// FormID joins category and operation into the canonical form identifier.
func FormID(category, name string) string {
	return internalmodel.FormID(category, name)
}

// DefaultLabeler is the label function used when none is configured.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// FilterUIHints keeps the UI hint keys renderers understand.
func FilterUIHints(hints map[string]string) map[string]string {
	return internalmodel.FilterUIHints(hints)
}

// AllowedUIHintKeys lists the UI hint keys renderers understand.
func AllowedUIHintKeys() []string {
	return internalmodel.AllowedUIHintKeys()
}
