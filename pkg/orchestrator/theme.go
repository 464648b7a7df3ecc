package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-opsform/pkg/render"
)

// ThemeSelector resolves a theme/variant pair into a manifest selection.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// WithThemeSelector configures theme resolution for every Generate call.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeDefaults sets the theme and variant used when a request names
// none.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithThemeFallbacks supplies partial templates used when the selected
// theme does not override them.
func WithThemeFallbacks(partials map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = partials
	}
}

func (o *Orchestrator) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	return render.ThemeConfig(selection, o.themeFallbacks), nil
}

// ManifestSelector selects among a fixed set of theme manifests. An empty
// name picks the first registered manifest; an unknown variant falls back to
// the base manifest.
type ManifestSelector struct {
	order     []string
	manifests map[string]*theme.Manifest
}

// NewManifestSelector registers manifests by name. Duplicate or unnamed
// manifests are rejected.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			return nil, fmt.Errorf("orchestrator: theme manifest name is required")
		}
		if _, exists := s.manifests[name]; exists {
			return nil, fmt.Errorf("orchestrator: theme %q registered twice", name)
		}
		s.manifests[name] = manifest
		s.order = append(s.order, name)
	}
	return s, nil
}

// Select implements ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.order) == 0 {
		return nil, fmt.Errorf("no themes registered")
	}
	if name == "" {
		name = s.order[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme %q not found (available: %s)", name, strings.Join(s.Names(), ", "))
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Names lists the registered theme names, sorted.
func (s *ManifestSelector) Names() []string {
	names := append([]string(nil), s.order...)
	sort.Strings(names)
	return names
}
