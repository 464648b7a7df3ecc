package validation

import (
	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
)

// Payload keys decoded arguments by field name, converting option values to
// their plain number or string form so the map encodes as JSON directly.
func Payload(fields []model.Field, args operation.Args) map[string]any {
	payload := make(map[string]any, len(fields))
	for i, field := range fields {
		pos := field.Position
		if pos < 0 || pos >= len(args) {
			pos = i
		}
		if pos >= len(args) {
			continue
		}
		payload[field.Name] = Plain(args[pos])
	}
	return payload
}

// Plain converts operation.OptionValue (and slices of it) to plain values.
// Other values are returned unchanged.
func Plain(value any) any {
	switch v := value.(type) {
	case operation.OptionValue:
		return v.Interface()
	case []operation.OptionValue:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item.Interface())
		}
		return out
	default:
		return v
	}
}
