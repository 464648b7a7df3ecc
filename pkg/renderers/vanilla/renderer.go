package vanilla

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/render"
	rendertemplate "github.com/goliatone/go-opsform/pkg/render/template"
	"github.com/goliatone/go-opsform/pkg/render/template/pongo"
	"github.com/goliatone/go-opsform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-opsform/pkg/widgets"
)

const (
	formTemplate       = "templates/form.tmpl"
	defaultSubmitLabel = "Submit"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the widget component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithWidgetRegistry replaces the registry used to pick a widget for fields
// without an explicit widget hint.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithStylesheet replaces the inline stylesheet. An empty string disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	widgets    *widgets.Registry
	stylesheet string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(cfg.templateFS)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}
	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}

	return &Renderer{
		templates:  renderer,
		components: cfg.components,
		widgets:    cfg.widgets,
		stylesheet: stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces a standalone HTML form. Field values, errors and hidden
// fields come from opts; the form model itself is not modified.
func (r *Renderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	render.LocalizeFormModel(&form, opts)

	var partials map[string]string
	if opts.Theme != nil {
		partials = opts.Theme.Partials
	}
	fields := newComponentRenderer(r.templates, r.components, r.widgets, partials)

	fieldMarkup := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		markup, err := fields.render(form.ID, field, opts)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fieldMarkup = append(fieldMarkup, map[string]any{
			"name": field.Name,
			"html": markup,
		})
	}

	hidden := make([]map[string]any, 0, len(opts.HiddenFields))
	for _, field := range render.SortedHiddenFields(opts.HiddenFields) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	result, err := formatResult(opts.Result)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	data := map[string]any{
		"form":        formView(form, opts),
		"fields":      fieldMarkup,
		"errors":      append([]string(nil), opts.FormErrors...),
		"hidden":      hidden,
		"result":      result,
		"hasResult":   opts.Result != nil,
		"classes":     chromeClasses(),
		"stylesheet":  r.stylesheet,
		"stylesheets": fields.stylesheets(),
		"theme":       themeView(opts),
	}

	output, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(output), nil
}

func formView(form model.FormModel, opts render.RenderOptions) map[string]any {
	action := strings.TrimSpace(opts.Action)
	if action == "" {
		action = form.Endpoint
	}
	method := strings.ToLower(strings.TrimSpace(form.Method))
	if method == "" {
		method = "post"
	}
	submit := strings.TrimSpace(form.UIHints["submitLabel"])
	if submit == "" {
		submit = defaultSubmitLabel
	}
	return map[string]any{
		"id":             form.ID,
		"domId":          "of-" + pongo.Slug(form.ID),
		"title":          form.Summary,
		"description":    sanitizeDescription(form.Description),
		"action":         action,
		"method":         method,
		"submitLabel":    submit,
		"successMessage": form.UIHints["successMessage"],
		"icon":           form.Metadata["icon"],
	}
}

func themeView(opts render.RenderOptions) map[string]any {
	view := map[string]any{"name": "", "variant": "", "vars": ""}
	if opts.Theme == nil {
		return view
	}
	view["name"] = opts.Theme.Theme
	view["variant"] = opts.Theme.Variant
	view["vars"] = render.CSSDeclarations(opts.Theme.CSSVars)
	return view
}

func formatResult(result map[string]any) (string, error) {
	if result == nil {
		return "", nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}
