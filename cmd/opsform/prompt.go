package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/orchestrator"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/validation"
)

// collector is the part of the terminal renderer promptAndSubmit needs.
type collector interface {
	Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (validation.Values, error)
}

// promptAndSubmit collects answers and submits them. Rejected submissions are
// prompted again with the previous answers and the errors shown, up to
// maxPromptRounds times.
func promptAndSubmit(ctx context.Context, orch *orchestrator.Orchestrator, prompts collector, category, name, actor string) (orchestrator.Outcome, error) {
	form, _, err := orch.Form(ctx, category, name)
	if err != nil {
		return orchestrator.Outcome{}, err
	}

	var opts render.RenderOptions
	for round := 1; ; round++ {
		values, err := prompts.Collect(ctx, form, opts)
		if err != nil {
			return orchestrator.Outcome{}, err
		}

		outcome, err := orch.Submit(ctx, orchestrator.Submission{
			Category:  category,
			Operation: name,
			Values:    values,
			Actor:     actor,
		})
		if err == nil {
			return outcome, nil
		}
		if !errors.Is(err, orchestrator.ErrInvalidSubmission) {
			return outcome, err
		}
		if round >= maxPromptRounds {
			return outcome, fmt.Errorf("giving up after %d attempts: %w", round, err)
		}

		opts = render.RenderOptions{Values: values}
		outcome.Errors.Apply(&opts)
	}
}
