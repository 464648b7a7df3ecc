// Package orchestrator wires the operation registry, form builder, UI
// overlays, renderers, the admin API handlers and the submission journal
// into two calls: Generate renders a form and Submit runs it.
package orchestrator
