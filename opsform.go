// Package opsform renders admin operations as forms. It re-exports the
// orchestrator entry points for callers that only need the defaults.
package opsform

import (
	"context"

	"github.com/goliatone/go-opsform/pkg/orchestrator"
	"github.com/goliatone/go-opsform/pkg/registry"
	"github.com/goliatone/go-opsform/pkg/render"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Submission is a set of submitted values for one operation.
type Submission = orchestrator.Submission

// Outcome is the result of a submission.
type Outcome = orchestrator.Outcome

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML builds the form for category/operation and renders it with
// the vanilla renderer.
func GenerateHTML(ctx context.Context, category, operation string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Category:  category,
		Operation: operation,
		Renderer:  "vanilla",
	})
}

// Submit validates values against the operation's form and invokes it.
func Submit(ctx context.Context, sub Submission, options ...orchestrator.Option) (Outcome, error) {
	return orchestrator.New(options...).Submit(ctx, sub)
}

// WithOperations serves a custom operation registry instead of the default
// admin operations.
func WithOperations(operations *registry.Registry) orchestrator.Option {
	return orchestrator.WithOperations(operations)
}

// WithThemeSelector passes a theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
