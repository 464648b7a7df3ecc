// Package api declares the default admin operations exposed to renderers.
package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-opsform/internal/logging"
	"github.com/goliatone/go-opsform/pkg/adminclient"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/registry"
)

// API is the descriptor consumed by renderers: the auth token used for
// admin requests and the registry of operations.
type API struct {
	AuthToken  string
	Operations *registry.Registry
}

// Option configures New.
type Option func(*config)

type config struct {
	client    *adminclient.Client
	authToken string
	logger    *slog.Logger
	extra     map[string][]operation.Operation
}

// WithAdminClient routes handlers through the admin HTTP API. Without a
// client, handlers only log their arguments.
func WithAdminClient(client *adminclient.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithAuthToken sets API.AuthToken. Handlers attach it to requests unless
// the context already carries a token.
func WithAuthToken(token string) Option {
	return func(c *config) {
		c.authToken = token
	}
}

// WithLogger sets the fallback logger used when the context has none.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithOperations appends operations to a category after the defaults.
func WithOperations(category string, ops ...operation.Operation) Option {
	return func(c *config) {
		if c.extra == nil {
			c.extra = make(map[string][]operation.Operation)
		}
		c.extra[category] = append(c.extra[category], ops...)
	}
}

// New builds the default API descriptor.
func New(options ...Option) (*API, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	users := &userHandlers{
		client: cfg.client,
		token:  cfg.authToken,
		logger: cfg.logger,
	}

	create, err := operation.New("create", "Create a new user", CreateUserParams(), users.create)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	categories := map[string][]operation.Operation{
		"user": {create},
	}
	for category, ops := range cfg.extra {
		categories[category] = append(categories[category], ops...)
	}

	reg, err := registry.New(categories)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	return &API{AuthToken: cfg.authToken, Operations: reg}, nil
}

// Default is New without options. It panics if the built-in operations are
// invalid.
func Default() *API {
	a, err := New()
	if err != nil {
		panic(err)
	}
	return a
}

// Lookup is a shortcut for Operations.Lookup.
func (a *API) Lookup(category string) ([]operation.Operation, bool) {
	if a == nil {
		return nil, false
	}
	return a.Operations.Lookup(category)
}

// ContextWithToken attaches the descriptor's token to ctx unless one is
// already present.
func (a *API) ContextWithToken(ctx context.Context) context.Context {
	if a == nil || a.AuthToken == "" {
		return ctx
	}
	if _, ok := adminclient.TokenFromContext(ctx); ok {
		return ctx
	}
	return adminclient.ContextWithToken(ctx, a.AuthToken)
}

func loggerFor(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == slog.Default() && fallback != nil {
		return fallback
	}
	return logger
}
