package uischema

// Store keeps the parsed operation overlays. It is safe for concurrent
// readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation is the overlay for one form, identified by its form ID.
type Operation struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig overrides form-level text and hints.
type FormConfig struct {
	Title          string            `json:"title" yaml:"title"`
	Description    string            `json:"description" yaml:"description"`
	SubmitLabel    string            `json:"submitLabel" yaml:"submitLabel"`
	SuccessMessage string            `json:"successMessage" yaml:"successMessage"`
	Icon           string            `json:"icon" yaml:"icon"`
	Metadata       map[string]string `json:"metadata" yaml:"metadata"`
	UIHints        map[string]string `json:"uiHints" yaml:"uiHints"`
}

// FieldConfig customises how one parameter is presented.
type FieldConfig struct {
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText     string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget       string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	CSSClass     string            `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Autocomplete string            `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	HideLabel    bool              `json:"hideLabel,omitempty" yaml:"hideLabel,omitempty"`
	UIHints      map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	OriginalKey  string            `json:"-" yaml:"-"`
}

// hints folds the first-class attributes into a UI hint map. Explicit
// attributes win over entries in UIHints.
func (c FieldConfig) hints() map[string]string {
	out := make(map[string]string, len(c.UIHints)+7)
	for key, value := range c.UIHints {
		out[key] = value
	}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("label", c.Label)
	set("helpText", c.HelpText)
	set("placeholder", c.Placeholder)
	set("widget", c.Widget)
	set("cssClass", c.CSSClass)
	set("autocomplete", c.Autocomplete)
	if c.HideLabel {
		out["hideLabel"] = "true"
	}
	return out
}
