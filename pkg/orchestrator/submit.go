package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-opsform/pkg/adminclient"
	"github.com/goliatone/go-opsform/pkg/journal"
	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/validation"
)

// ErrInvalidSubmission is returned when submitted values fail validation,
// locally or at the admin API. The Outcome carries the messages.
var ErrInvalidSubmission = errors.New("orchestrator: invalid submission")

// Submission is one set of submitted values for an operation.
type Submission struct {
	Category  string
	Operation string
	Values    validation.Values
	// Actor identifies who submitted; it is only recorded in the journal.
	Actor string
	// Token overrides the admin API token for this submission.
	Token string
}

// Outcome describes what happened to a submission. ID matches the journal
// entry.
type Outcome struct {
	ID     string             `json:"id"`
	Result operation.Result   `json:"result"`
	Errors render.ErrorMapping `json:"errors,omitempty"`
}

// Submit decodes the values against the operation's form, invokes the
// handler and journals the outcome. Validation failures return the Outcome
// with its Errors populated alongside ErrInvalidSubmission.
func (o *Orchestrator) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	form, op, err := o.Form(ctx, sub.Category, sub.Operation)
	if err != nil {
		return Outcome{}, err
	}
	logger := o.loggerFor(ctx).With(slog.String("operation", form.ID))
	outcome := Outcome{ID: uuid.NewString()}
	entry := journal.Entry{
		ID:        outcome.ID,
		Category:  form.Category,
		Operation: form.Operation,
		Actor:     sub.Actor,
	}

	args, err := validation.Decode(form.Fields, sub.Values)
	if err != nil {
		verrs, ok := validation.AsErrors(err)
		if !ok {
			return Outcome{}, fmt.Errorf("orchestrator: decode %s: %w", form.ID, err)
		}
		outcome.Errors = render.ErrorMapping{Fields: map[string][]string(verrs)}
		entry.Params = rawParams(form, sub.Values)
		entry.Status = journal.StatusInvalid
		entry.Error = verrs.Error()
		o.record(ctx, logger, entry)
		logger.Info("submission rejected", slog.Any("fields", verrs.Fields()))
		return outcome, fmt.Errorf("%w: %w", ErrInvalidSubmission, verrs)
	}
	entry.Params = journal.Redact(validation.Payload(form.Fields, args), sensitiveFields(form)...)

	if sub.Token != "" {
		ctx = adminclient.ContextWithToken(ctx, sub.Token)
	}
	result, err := op.Invoke(ctx, args)
	if err != nil {
		entry.Status = journal.StatusFailed
		entry.Error = err.Error()

		var apiErr *adminclient.APIError
		if errors.As(err, &apiErr) {
			outcome.Errors = render.MapErrorPayload(form, apiErr.Fields)
			if apiErr.Message != "" {
				outcome.Errors.Form = render.MergeFormErrors(outcome.Errors.Form, apiErr.Message)
			}
			if len(apiErr.Fields) > 0 {
				entry.Status = journal.StatusInvalid
				o.record(ctx, logger, entry)
				logger.Info("submission rejected by admin API", slog.Int("status", apiErr.Status))
				return outcome, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
			}
		} else {
			outcome.Errors.Form = []string{err.Error()}
		}
		o.record(ctx, logger, entry)
		logger.Error("submission failed", slog.Any("error", err))
		return outcome, fmt.Errorf("orchestrator: invoke %s: %w", form.ID, err)
	}

	outcome.Result = result
	entry.Status = journal.StatusOK
	o.record(ctx, logger, entry)
	logger.Info("submission completed", slog.String("id", outcome.ID))
	return outcome, nil
}

// Journal returns the configured submission recorder.
func (o *Orchestrator) Journal() journal.Recorder {
	return o.journal
}

func (o *Orchestrator) record(ctx context.Context, logger *slog.Logger, entry journal.Entry) {
	if _, err := o.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("journal record failed", slog.Any("error", err))
	}
}

func sensitiveFields(form model.FormModel) []string {
	var names []string
	for _, field := range form.Fields {
		if field.InputKind == operation.KindPassword || field.Metadata["sensitive"] == "true" {
			names = append(names, field.Name)
		}
	}
	return names
}

// rawParams keeps the submitted strings of known fields for invalid
// submissions, which have no decoded arguments.
func rawParams(form model.FormModel, values validation.Values) map[string]any {
	params := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		raw, ok := values[field.Name]
		if !ok {
			continue
		}
		if field.Multiple {
			params[field.Name] = append([]string(nil), raw...)
			continue
		}
		params[field.Name] = strings.Join(raw, ",")
	}
	return journal.Redact(params, sensitiveFields(form)...)
}
