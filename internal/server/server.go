// Package server exposes the operation registry over HTTP: an index of
// operations, one HTML form per operation that submits back to itself, the
// OpenAPI description and the submission journal.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-opsform/pkg/openapi"
	"github.com/goliatone/go-opsform/pkg/orchestrator"
	"github.com/goliatone/go-opsform/pkg/render/template/pongo"
	"github.com/goliatone/go-opsform/pkg/renderers/vanilla"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	indexTemplate = "templates/index.tmpl"
	pageTemplate  = "templates/page.tmpl"
)

// Option configures the server.
type Option func(*Server)

// WithLogger sets the base request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTitle sets the index page title and the OpenAPI document title.
func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.info.Title = title
		}
	}
}

// WithVersion sets the OpenAPI document version.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.info.Version = version
		}
	}
}

// WithShutdownGrace bounds how long Run waits for in-flight requests.
func WithShutdownGrace(grace time.Duration) Option {
	return func(s *Server) {
		if grace > 0 {
			s.grace = grace
		}
	}
}

// Server serves forms for every registered operation.
type Server struct {
	orch   *orchestrator.Orchestrator
	pages  *pongo.Engine
	logger *slog.Logger
	info   openapi.Info
	grace  time.Duration
}

// New builds a Server around orch.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	pages, err := pongo.New(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}

	s := &Server{
		orch:   orch,
		pages:  pages,
		logger: slog.Default(),
		info:   openapi.Info{Title: "opsform", Version: "0.1.0"},
		grace:  5 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Handler returns the routed handler wrapped in request id and logging
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ops/{category}/{name}", s.handleForm)
	mux.HandleFunc("POST /ops/{category}/{name}", s.handleSubmit)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.HandleFunc("GET /journal", s.handleJournal)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	return RequestID(RequestLogger(s.logger)(mux))
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
