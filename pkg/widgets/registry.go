package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
)

// Built-in widget identifiers. Each has a template partial in the vanilla
// renderer and a prompt in the terminal renderer.
const (
	WidgetText        = "text"
	WidgetEmail       = "email"
	WidgetNumber      = "number"
	WidgetPassword    = "password"
	WidgetCheckbox    = "checkbox"
	WidgetToggle      = "toggle"
	WidgetSelect      = "select"
	WidgetRadio       = "radio"
	WidgetMultiSelect = "multiselect"
	WidgetCheckboxes  = "checkboxes"
)

// Builtins lists the built-in widget identifiers.
func Builtins() []string {
	return []string{
		WidgetText, WidgetEmail, WidgetNumber, WidgetPassword, WidgetCheckbox,
		WidgetToggle, WidgetSelect, WidgetRadio, WidgetMultiSelect, WidgetCheckboxes,
	}
}

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget renderers for fields based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit widget hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, storing the resolved widget in
// UIHints["widget"] for every field that has none.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		field = r.decorateField(field)
		decorated[idx] = field
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	widget, ok := r.Resolve(field)
	if !ok || widget == "" {
		return field
	}
	hints := make(map[string]string, len(field.UIHints)+1)
	for key, value := range field.UIHints {
		hints[key] = value
	}
	if hints["widget"] == "" {
		hints["widget"] = widget
	}
	field.UIHints = hints
	return field
}

func explicitWidget(field model.Field) string {
	if field.UIHints != nil {
		if widget := strings.TrimSpace(field.UIHints["widget"]); widget != "" {
			return widget
		}
	}
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
			return widget
		}
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetMultiSelect, 90, func(field model.Field) bool {
		return field.IsSelect() && field.Multiple
	})

	r.Register(WidgetSelect, 80, func(field model.Field) bool {
		return field.IsSelect()
	})

	r.Register(WidgetCheckbox, 70, inputKind(operation.KindCheckbox))
	r.Register(WidgetPassword, 60, inputKind(operation.KindPassword))
	r.Register(WidgetEmail, 50, inputKind(operation.KindEmail))
	r.Register(WidgetNumber, 40, inputKind(operation.KindNumber))

	r.Register(WidgetText, 0, func(field model.Field) bool {
		return !field.IsSelect()
	})
}

func inputKind(kind operation.InputKind) Matcher {
	return func(field model.Field) bool {
		return !field.IsSelect() && field.InputKind == kind
	}
}
