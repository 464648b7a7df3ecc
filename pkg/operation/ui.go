package operation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// InputKind enumerates the element kinds an InputText hint can render.
type InputKind string

const (
	KindCheckbox InputKind = "checkbox"
	KindEmail    InputKind = "email"
	KindNumber   InputKind = "number"
	KindPassword InputKind = "password"
	KindText     InputKind = "text"
)

// Valid reports whether k is one of the supported input kinds.
func (k InputKind) Valid() bool {
	switch k {
	case KindCheckbox, KindEmail, KindNumber, KindPassword, KindText:
		return true
	default:
		return false
	}
}

// ParamUI is the rendering hint for a single parameter. It is a closed union:
// the only implementations are InputText and Select.
type ParamUI interface {
	IsRequired() bool
	paramUI()
}

// InputText renders a single-line input of the given kind.
type InputText struct {
	Kind     InputKind `json:"type"`
	Required bool      `json:"required"`
}

func (InputText) paramUI() {}

// IsRequired reports whether an empty value must be rejected.
func (t InputText) IsRequired() bool { return t.Required }

// Select renders a single or multiple choice control. Options keep their
// declared order.
type Select struct {
	Multiple bool     `json:"multiple"`
	Required bool     `json:"required"`
	Options  []Option `json:"options"`
}

func (Select) paramUI() {}

// IsRequired reports whether at least one option must be chosen.
func (s Select) IsRequired() bool { return s.Required }

// Choices returns the options that can be submitted, skipping placeholders.
func (s Select) Choices() []Option {
	out := make([]Option, 0, len(s.Options))
	for _, opt := range s.Options {
		if opt.IsPlaceholder() {
			continue
		}
		out = append(out, opt)
	}
	return out
}

// Numeric reports whether every selectable option carries a number.
func (s Select) Numeric() bool {
	choices := s.Choices()
	if len(choices) == 0 {
		return false
	}
	for _, opt := range choices {
		if !opt.Value.IsNumber() {
			return false
		}
	}
	return true
}

// Option is one (label, value) entry of a Select.
type Option struct {
	Text  string      `json:"text"`
	Value OptionValue `json:"value"`
}

// Placeholder returns the empty option used to signal "no selection yet".
func Placeholder() Option {
	return Option{Text: "", Value: String("")}
}

// IsPlaceholder reports whether the option is the empty "no selection"
// entry. Only the value matters: an empty string never counts as a choice.
func (o Option) IsPlaceholder() bool {
	return o.Value.IsEmpty()
}

// Param couples a parameter name with its UI hint. The name is shown next to
// the rendered control, so it must be descriptive.
type Param struct {
	Name string
	UI   ParamUI
}

// Input is shorthand for a parameter rendered as an InputText.
func Input(name string, kind InputKind, required bool) Param {
	return Param{Name: name, UI: InputText{Kind: kind, Required: required}}
}

// Choice is shorthand for a parameter rendered as a Select.
func Choice(name string, sel Select) Param {
	return Param{Name: name, UI: sel}
}

// MarshalJSON encodes the parameter as a [name, ui] tuple.
func (p Param) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Name, p.UI})
}

// UnmarshalJSON decodes a [name, ui] tuple, telling the variants apart by the
// presence of an "options" or "multiple" key.
func (p *Param) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("operation: param: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("operation: param: expected [name, ui] pair, got %d elements", len(tuple))
	}
	var name string
	if err := json.Unmarshal(tuple[0], &name); err != nil {
		return fmt.Errorf("operation: param name: %w", err)
	}
	ui, err := decodeParamUI(tuple[1])
	if err != nil {
		return fmt.Errorf("operation: param %q: %w", name, err)
	}
	p.Name = name
	p.UI = ui
	return nil
}

func decodeParamUI(data []byte) (ParamUI, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	_, hasOptions := keys["options"]
	_, hasMultiple := keys["multiple"]
	if hasOptions || hasMultiple {
		var sel Select
		if err := json.Unmarshal(data, &sel); err != nil {
			return nil, err
		}
		return sel, nil
	}
	if _, ok := keys["type"]; !ok {
		return nil, errors.New("ui hint has neither type nor options")
	}
	var input InputText
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}
	return input, nil
}
