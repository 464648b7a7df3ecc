package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-opsform/internal/logging"
	"github.com/goliatone/go-opsform/pkg/api"
	"github.com/goliatone/go-opsform/pkg/journal"
	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/registry"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/renderers/vanilla"
	"github.com/goliatone/go-opsform/pkg/uischema"
	"github.com/goliatone/go-opsform/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithOperations sets the operation registry. The default is the built-in
// admin API registry.
func WithOperations(operations *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.operations = operations
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate form models
// after building but before UI decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the generated
// form model before rendering.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI overlay documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithJournal records every submission. The default discards them.
func WithJournal(recorder journal.Recorder) Option {
	return func(o *Orchestrator) {
		o.journal = recorder
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the pipeline from registry operation to rendered
// output and from submitted values to handler result.
type Orchestrator struct {
	operations            *registry.Registry
	builder               model.Builder
	registry              *render.Registry
	defaultRenderer       string
	initialiseErr         error
	defaultsApplied       bool
	decorators            []model.Decorator
	uiSchemaFS            fs.FS
	uiSchemaSpecified     bool
	uiDecoratorConfigured bool
	transformer           Transformer
	widgets               *widgets.Registry
	themeSelector         ThemeSelector
	defaultTheme          string
	defaultVariant        string
	themeFallbacks        map[string]string
	journal               journal.Recorder
	logger                *slog.Logger
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request selects the form to render and how.
type Request struct {
	Category  string
	Operation string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries prefilled values, errors, hidden fields and the
	// result of a previous submission.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant pick a theme when a selector is configured.
	// Empty values use the selector defaults.
	ThemeName    string
	ThemeVariant string
}

// Operations exposes the registry the orchestrator serves.
func (o *Orchestrator) Operations() *registry.Registry {
	return o.operations
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

// Generate builds, decorates and renders the form for the requested
// operation.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, _, err := o.Form(ctx, req.Category, req.Operation)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form resolves the operation and returns its decorated form model.
func (o *Orchestrator) Form(ctx context.Context, category, name string) (model.FormModel, operation.Operation, error) {
	if ctx == nil {
		return model.FormModel{}, operation.Operation{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, operation.Operation{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, operation.Operation{}, err
	}

	op, err := o.operations.Resolve(category, name)
	if err != nil {
		return model.FormModel{}, operation.Operation{}, fmt.Errorf("orchestrator: %w", err)
	}

	form, err := o.builder.Build(category, op)
	if err != nil {
		return model.FormModel{}, operation.Operation{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, operation.Operation{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, operation.Operation{}, err
	}
	return form, op, nil
}

// Decorators returns the decorators applied after the transformer, in
// order. The widget registry always runs last.
func (o *Orchestrator) Decorators() []model.Decorator {
	out := append([]model.Decorator(nil), o.decorators...)
	return append(out, o.widgets)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	for _, decorator := range o.Decorators() {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := logging.ContextLogger(ctx); ok {
		return logger
	}
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.operations == nil {
		o.operations = api.Default().Operations
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithWidgetRegistry(o.widgets))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.journal == nil {
		o.journal = journal.Nop{}
	}

	o.ensureUIDecorator()

	o.defaultsApplied = true
}

func (o *Orchestrator) ensureUIDecorator() {
	if o.uiDecoratorConfigured {
		return
	}
	o.uiDecoratorConfigured = true

	if !o.uiSchemaSpecified && o.uiSchemaFS == nil {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append(o.decorators, uischema.NewDecorator(store))
}
