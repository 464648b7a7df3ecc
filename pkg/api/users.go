package api

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-opsform/pkg/adminclient"
	"github.com/goliatone/go-opsform/pkg/operation"
)

// Account kinds offered by user.create.
const (
	KindPersonal = 1
	KindBusiness = 2
)

// CreateUserArgs binds the user.create params in order.
type CreateUserArgs struct {
	Email    string
	FullName string
	Password string
	Kind     operation.OptionValue
}

// CreateUserParams returns the user.create parameter list.
func CreateUserParams() []operation.Param {
	return []operation.Param{
		operation.Input("email", operation.KindText, true),
		operation.Input("full name", operation.KindText, false),
		operation.Input("password", operation.KindPassword, true),
		operation.Choice("kind", operation.Select{
			Multiple: false,
			Required: true,
			Options: []operation.Option{
				operation.Placeholder(),
				{Text: "personal", Value: operation.Number(KindPersonal)},
				{Text: "business", Value: operation.Number(KindBusiness)},
			},
		}),
	}
}

type userHandlers struct {
	client *adminclient.Client
	token  string
	logger *slog.Logger
}

func (h *userHandlers) create(ctx context.Context, args CreateUserArgs) (operation.Result, error) {
	logger := loggerFor(ctx, h.logger)
	logger.InfoContext(ctx, "user create",
		slog.String("email", args.Email),
		slog.String("full_name", args.FullName),
		slog.String("password", redact(args.Password)),
		slog.String("kind", args.Kind.String()),
	)

	if h.client == nil {
		return operation.Result{}, nil
	}

	if h.token != "" {
		if _, ok := adminclient.TokenFromContext(ctx); !ok {
			ctx = adminclient.ContextWithToken(ctx, h.token)
		}
	}
	return h.client.CreateUser(ctx, adminclient.CreateUserRequest{
		Email:    args.Email,
		FullName: args.FullName,
		Password: args.Password,
		Kind:     int(args.Kind.Float()),
	})
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
