package orchestrator

import (
	"github.com/goliatone/go-opsform/pkg/widgets"
)

// WithWidgetRegistry replaces the registry that picks widgets for fields
// without an explicit widget hint.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// RegisterWidget adds a widget matcher at runtime. Renderers must know the
// widget name for the matched fields to render.
func (o *Orchestrator) RegisterWidget(name string, priority int, matcher widgets.Matcher) {
	o.widgets.Register(name, priority, matcher)
}

// WidgetRegistry exposes the widget registry used by the orchestrator.
func (o *Orchestrator) WidgetRegistry() *widgets.Registry {
	return o.widgets
}
