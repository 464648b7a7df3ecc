package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-opsform/internal/server"
	"github.com/goliatone/go-opsform/pkg/openapi"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/orchestrator"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/renderers/tui"
	"github.com/goliatone/go-opsform/pkg/uischema"
)

const maxPromptRounds = 5

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "opsform",
		Usage:   "Forms for admin operations, in the browser and the terminal",
		Version: version,
		Suggest: true,

		HideHelpCommand: true,

		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file read before the environment"},
			&cli.StringFlag{Name: "api-url", Usage: "admin API base URL (OPSFORM_API_URL)"},
			&cli.StringFlag{Name: "token", Usage: "admin API token (OPSFORM_AUTH_TOKEN)"},
			&cli.StringFlag{Name: "journal", Usage: "sqlite journal path (OPSFORM_JOURNAL)"},
			&cli.StringFlag{Name: "ui-schema", Usage: "directory of UI overlays (OPSFORM_UI_SCHEMA)"},
			&cli.StringFlag{Name: "theme-file", Usage: "YAML theme manifest (OPSFORM_THEME_FILE)"},
			&cli.StringFlag{Name: "theme", Usage: "theme name (OPSFORM_THEME)"},
			&cli.StringFlag{Name: "variant", Usage: "theme variant (OPSFORM_THEME_VARIANT)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (OPSFORM_LOG_LEVEL)"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json (OPSFORM_LOG_FORMAT)"},
		},

		Commands: []*cli.Command{
			serveCommand(),
			listCommand(),
			renderCommand(),
			promptCommand(),
			openapiCommand(),
			lintCommand(),
			journalCommand(),
		},
	}
}

// withRuntime wires a runtime for the duration of action.
func withRuntime(action func(ctx context.Context, cmd *cli.Command, rt *runtime) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		return action(ctx, cmd, rt)
	}
}

func operationArgs(cmd *cli.Command) (string, string, error) {
	if cmd.Args().Len() != 2 {
		return "", "", fmt.Errorf("%s: expected <category> <operation>", cmd.Name)
	}
	return cmd.Args().Get(0), cmd.Args().Get(1), nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a form per operation over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (OPSFORM_ADDR)"},
			&cli.StringFlag{Name: "title", Value: "opsform", Usage: "index page and OpenAPI title"},
		},
		Action: withRuntime(func(ctx context.Context, cmd *cli.Command, rt *runtime) error {
			addr := rt.cfg.Addr
			if cmd.IsSet("addr") {
				addr = cmd.String("addr")
			}
			srv, err := server.New(rt.orch,
				server.WithLogger(rt.logger),
				server.WithTitle(cmd.String("title")),
				server.WithVersion(version),
			)
			if err != nil {
				return err
			}
			return srv.Run(ctx, addr)
		}),
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List registered operations",
		Action: withRuntime(func(_ context.Context, cmd *cli.Command, rt *runtime) error {
			w := outWriter(cmd)
			return rt.orch.Operations().Each(func(category string, op operation.Operation) error {
				_, err := fmt.Fprintf(w, "%s %s\t%s\n", category, op.Name, op.Desc)
				return err
			})
		}),
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render the HTML form of an operation",
		ArgsUsage: "<category> <operation>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (stdout if empty)"},
			&cli.StringFlag{Name: "action", Usage: "form action URL (defaults to the operation endpoint)"},
		},
		Action: withRuntime(func(ctx context.Context, cmd *cli.Command, rt *runtime) error {
			category, name, err := operationArgs(cmd)
			if err != nil {
				return err
			}
			html, err := rt.orch.Generate(ctx, orchestrator.Request{
				Category:      category,
				Operation:     name,
				Renderer:      "vanilla",
				RenderOptions: render.RenderOptions{Action: cmd.String("action")},
				ThemeName:     rt.cfg.Theme,
				ThemeVariant:  rt.cfg.Variant,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, cmd.String("output"), html)
		}),
	}
}

func promptCommand() *cli.Command {
	return &cli.Command{
		Name:      "prompt",
		Usage:     "Prompt for an operation's parameters in the terminal and submit them",
		ArgsUsage: "<category> <operation>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "print the collected payload instead of submitting it"},
			&cli.StringFlag{Name: "format", Value: string(tui.OutputFormatJSON), Usage: "dry-run output: json, form or pretty"},
		},
		Action: withRuntime(func(ctx context.Context, cmd *cli.Command, rt *runtime) error {
			category, name, err := operationArgs(cmd)
			if err != nil {
				return err
			}
			prompts, err := tui.New(
				tui.WithWidgetRegistry(rt.orch.WidgetRegistry()),
				tui.WithOutputFormat(tui.OutputFormat(cmd.String("format"))),
				tui.WithOutput(errWriter(cmd)),
				tui.WithMaxAttempts(maxPromptRounds),
			)
			if err != nil {
				return err
			}

			if cmd.Bool("dry-run") {
				if err := rt.orch.Renderers().Register(prompts); err != nil {
					return err
				}
				out, err := rt.orch.Generate(ctx, orchestrator.Request{Category: category, Operation: name, Renderer: prompts.Name()})
				if err != nil {
					return err
				}
				return writeOutput(cmd, "", append(out, '\n'))
			}

			outcome, err := promptAndSubmit(ctx, rt.orch, prompts, category, name, currentActor())
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(outWriter(cmd))
			encoder.SetIndent("", "  ")
			return encoder.Encode(outcome)
		}),
	}
}

func openapiCommand() *cli.Command {
	return &cli.Command{
		Name:  "openapi",
		Usage: "Print the OpenAPI description of every operation",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yaml", Usage: "emit YAML instead of JSON"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (stdout if empty)"},
			&cli.StringFlag{Name: "title", Value: "opsform", Usage: "document title"},
		},
		Action: withRuntime(func(_ context.Context, cmd *cli.Command, rt *runtime) error {
			doc, err := openapi.Export(rt.orch.Operations(),
				openapi.Info{Title: cmd.String("title"), Version: version},
				openapi.WithDecorators(rt.orch.Decorators()...),
			)
			if err != nil {
				return err
			}
			marshal := openapi.MarshalJSON
			if cmd.Bool("yaml") {
				marshal = openapi.MarshalYAML
			}
			data, err := marshal(doc)
			if err != nil {
				return err
			}
			return writeOutput(cmd, cmd.String("output"), data)
		}),
	}
}

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Check UI overlays against the registered operations",
		ArgsUsage: "[dir]",
		Action: withRuntime(func(_ context.Context, cmd *cli.Command, rt *runtime) error {
			fsys := uischema.EmbeddedFS()
			if dir := cmd.Args().First(); dir != "" {
				fsys = os.DirFS(dir)
			} else if rt.cfg.UISchema != "" {
				fsys = os.DirFS(rt.cfg.UISchema)
			}
			store, err := uischema.LoadFS(fsys)
			if err != nil {
				return err
			}
			violations, err := uischema.Lint(store, rt.orch.Operations(), nil)
			if err != nil {
				return err
			}
			for _, v := range violations {
				fmt.Fprintln(errWriter(cmd), v)
			}
			if len(violations) > 0 {
				return fmt.Errorf("lint: %d violation(s)", len(violations))
			}
			return nil
		}),
	}
}

func journalCommand() *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "Print recent submissions from the journal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "limit", Value: "20", Usage: "number of entries"},
		},
		Action: withRuntime(func(ctx context.Context, cmd *cli.Command, rt *runtime) error {
			if rt.cfg.Journal == "" {
				return errors.New("journal: no journal configured (set OPSFORM_JOURNAL or --journal)")
			}
			limit, err := strconv.Atoi(cmd.String("limit"))
			if err != nil || limit <= 0 {
				return fmt.Errorf("journal: limit must be a positive integer, got %q", cmd.String("limit"))
			}
			entries, err := rt.orch.Journal().Recent(ctx, limit)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(outWriter(cmd))
			for _, entry := range entries {
				if err := encoder.Encode(entry); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func currentActor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "cli"
}
