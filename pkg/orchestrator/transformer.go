package orchestrator

import (
	"context"

	"github.com/goliatone/go-opsform/pkg/model"
)

// Transformer mutates a FormModel before UI decorators run. Implementations
// can inject metadata, reorder options or hide choices per request.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}
