package model

import (
	"github.com/goliatone/go-opsform/internal/model"
	"github.com/goliatone/go-opsform/pkg/operation"
)

// Builder converts registry operations into form models.
type Builder interface {
	Build(category string, op operation.Operation) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler        func(string) string
	endpointPrefix string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithEndpointPrefix sets the path prefix of generated endpoints. The
// default is "/api".
func WithEndpointPrefix(prefix string) BuilderOption {
	return func(opts *builderOptions) {
		opts.endpointPrefix = prefix
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return model.New(model.Options{
		Labeler:        cfg.labeler,
		EndpointPrefix: cfg.endpointPrefix,
	})
}
