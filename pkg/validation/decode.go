package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
)

// Messages used in Errors. Renderers show them verbatim.
const (
	MsgRequired      = "is required"
	MsgInvalidEmail  = "must be a valid email address"
	MsgInvalidNumber = "must be a number"
	MsgInvalidBool   = "must be a boolean"
	MsgUnknownOption = "is not one of the available options"
	MsgSingleOption  = "accepts a single option"
)

// Values is the raw submission keyed by field name. url.Values converts
// directly.
type Values map[string][]string

// Get returns the first value for name.
func (v Values) Get(name string) string {
	if vals := v[name]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Set replaces the values for name.
func (v Values) Set(name string, values ...string) {
	v[name] = values
}

// Decode validates values against fields and returns the arguments in
// field position order. Every field is checked; failures are collected into
// an Errors value.
func Decode(fields []model.Field, values Values) (operation.Args, error) {
	args := make(operation.Args, len(fields))
	verrs := make(Errors)

	for i, field := range fields {
		pos := field.Position
		if pos < 0 || pos >= len(fields) {
			pos = i
		}
		value, err := DecodeField(field, values[field.Name])
		if err != nil {
			verrs.Add(field.Name, err.Error())
			continue
		}
		args[pos] = value
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return args, nil
}

// DecodeField validates the raw values of one field. The returned value is
// string for text, email and password inputs, float64 for numbers, bool for
// checkboxes, operation.OptionValue for single selects (nil when nothing was
// chosen) and []operation.OptionValue for multiple selects.
func DecodeField(field model.Field, raw []string) (any, error) {
	if field.IsSelect() {
		return decodeSelect(field, raw)
	}
	return decodeInput(field, first(raw))
}

func decodeInput(field model.Field, raw string) (any, error) {
	switch field.InputKind {
	case operation.KindCheckbox:
		checked, err := parseCheckbox(raw)
		if err != nil {
			return nil, err
		}
		if field.Required && !checked {
			return nil, fieldError(MsgRequired)
		}
		return checked, nil
	case operation.KindNumber:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			if field.Required {
				return nil, fieldError(MsgRequired)
			}
			return float64(0), nil
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fieldError(MsgInvalidNumber)
		}
		return n, nil
	case operation.KindEmail:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			if field.Required {
				return nil, fieldError(MsgRequired)
			}
			return "", nil
		}
		addr, err := mail.ParseAddress(trimmed)
		if err != nil || addr.Address != trimmed {
			return nil, fieldError(MsgInvalidEmail)
		}
		return trimmed, nil
	case operation.KindPassword:
		if field.Required && raw == "" {
			return nil, fieldError(MsgRequired)
		}
		return raw, nil
	default:
		if field.Required && strings.TrimSpace(raw) == "" {
			return nil, fieldError(MsgRequired)
		}
		return raw, nil
	}
}

func decodeSelect(field model.Field, raw []string) (any, error) {
	chosen := make([]operation.OptionValue, 0, len(raw))
	for _, value := range raw {
		if value == "" {
			continue
		}
		opt, ok := matchOption(field, value)
		if !ok {
			return nil, fieldError(MsgUnknownOption)
		}
		chosen = append(chosen, opt.Value)
	}

	if field.Required && len(chosen) == 0 {
		return nil, fieldError(MsgRequired)
	}

	if field.Multiple {
		return chosen, nil
	}
	switch len(chosen) {
	case 0:
		return nil, nil
	case 1:
		return chosen[0], nil
	default:
		return nil, fieldError(MsgSingleOption)
	}
}

func matchOption(field model.Field, raw string) (model.Option, bool) {
	for _, opt := range field.Options {
		if opt.Placeholder {
			continue
		}
		if opt.Value.String() == raw {
			return opt, true
		}
	}
	return model.Option{}, false
}

func parseCheckbox(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "off", "false", "0", "no":
		return false, nil
	case "on", "true", "1", "yes":
		return true, nil
	default:
		return false, fieldError(MsgInvalidBool)
	}
}

func first(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return raw[0]
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

// Encode is the inverse of Decode for a single value, producing the strings
// a form would submit. It is used to prefill forms from typed defaults.
func Encode(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case bool:
		if v {
			return []string{"on"}
		}
		return nil
	case operation.OptionValue:
		if v.IsEmpty() {
			return nil
		}
		return []string{v.String()}
	case []operation.OptionValue:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, item.String())
		}
		return out
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	case int:
		return []string{strconv.Itoa(v)}
	default:
		return []string{fmt.Sprint(v)}
	}
}
