package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-opsform/internal/config"
	"github.com/goliatone/go-opsform/internal/logging"
	"github.com/goliatone/go-opsform/pkg/adminclient"
	"github.com/goliatone/go-opsform/pkg/api"
	"github.com/goliatone/go-opsform/pkg/journal"
	"github.com/goliatone/go-opsform/pkg/orchestrator"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/renderers/vanilla"
	"github.com/goliatone/go-opsform/pkg/widgets"
)

// runtime holds everything a command needs, wired from config and flags.
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	orch    *orchestrator.Orchestrator
	closers []func() error
}

func setup(cmd *cli.Command) (*runtime, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return nil, err
	}
	overrideFromFlags(cmd, &cfg)

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, errWriter(cmd))
	logger.Debug("configuration loaded", slog.Any("config", cfg.Redacted()))

	rt := &runtime{cfg: cfg, logger: logger}

	descriptor, err := newAPI(cfg, logger)
	if err != nil {
		return nil, err
	}

	widgetRegistry := widgets.NewRegistry()
	renderers := render.NewRegistry()
	html, err := vanilla.New(vanilla.WithWidgetRegistry(widgetRegistry))
	if err != nil {
		return nil, err
	}
	renderers.MustRegister(html)

	options := []orchestrator.Option{
		orchestrator.WithOperations(descriptor.Operations),
		orchestrator.WithRegistry(renderers),
		orchestrator.WithWidgetRegistry(widgetRegistry),
		orchestrator.WithLogger(logger),
	}

	if cfg.UISchema != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(cfg.UISchema)))
	}

	if cfg.ThemeFile != "" {
		manifest, err := orchestrator.LoadThemeManifest(cfg.ThemeFile)
		if err != nil {
			return nil, err
		}
		selector, err := orchestrator.NewManifestSelector(manifest)
		if err != nil {
			return nil, err
		}
		options = append(options,
			orchestrator.WithThemeSelector(selector),
			orchestrator.WithThemeDefaults(cfg.Theme, cfg.Variant),
		)
	}

	if cfg.Journal != "" {
		store, err := journal.Open(cfg.Journal)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, store.Close)
		options = append(options, orchestrator.WithJournal(store))
	}

	rt.orch = orchestrator.New(options...)
	return rt, nil
}

func newAPI(cfg config.Config, logger *slog.Logger) (*api.API, error) {
	options := []api.Option{
		api.WithAuthToken(cfg.AuthToken),
		api.WithLogger(logger),
	}
	if cfg.APIURL != "" {
		client, err := adminclient.New(cfg.APIURL,
			adminclient.WithAuthToken(cfg.AuthToken),
			adminclient.WithTimeout(cfg.Timeout),
			adminclient.WithUserAgent("opsform/"+version),
		)
		if err != nil {
			return nil, err
		}
		options = append(options, api.WithAdminClient(client))
	} else {
		logger.Debug("no admin API configured, handlers only log their arguments")
	}
	return api.New(options...)
}

func (rt *runtime) Close() error {
	var errs []error
	for _, closer := range rt.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func overrideFromFlags(cmd *cli.Command, cfg *config.Config) {
	for flag, target := range map[string]*string{
		"api-url":    &cfg.APIURL,
		"token":      &cfg.AuthToken,
		"journal":    &cfg.Journal,
		"ui-schema":  &cfg.UISchema,
		"theme-file": &cfg.ThemeFile,
		"theme":      &cfg.Theme,
		"variant":    &cfg.Variant,
		"log-level":  &cfg.LogLevel,
		"log-format": &cfg.LogFormat,
	} {
		if cmd.IsSet(flag) {
			*target = cmd.String(flag)
		}
	}
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func writeOutput(cmd *cli.Command, path string, data []byte) error {
	if path == "" {
		_, err := outWriter(cmd).Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(errWriter(cmd), "written to %s\n", path)
	return nil
}
