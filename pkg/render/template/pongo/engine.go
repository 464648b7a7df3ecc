// Package pongo renders the HTML templates shipped with the vanilla renderer
// and the HTTP server on top of pongo2.
package pongo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-opsform/pkg/render/template"
)

// DefaultExtension is appended to template names that lack one.
const DefaultExtension = ".tmpl"

var registerFilters sync.Once

// Option configures an Engine.
type Option func(*Engine)

// WithExtension overrides DefaultExtension. A missing leading dot is added.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// Engine executes templates loaded from an fs.FS. Parsed templates are cached
// by path; the cache is safe for concurrent renders.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine over files.
func New(files fs.FS, options ...Option) (*Engine, error) {
	if files == nil {
		return nil, errors.New("pongo: template fs is required")
	}
	registerFilters.Do(func() {
		if !pongo2.FilterExists("slug") {
			_ = pongo2.RegisterFilter("slug", filterSlug)
		}
	})

	e := &Engine{
		set:   pongo2.NewSet("opsform", pongo2.NewFSLoader(files)),
		ext:   DefaultExtension,
		cache: make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// RenderTemplate executes the named template with data as its context. The
// output is returned and also written to every writer in out.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	rendered, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute %q: %w", path, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func filterSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(Slug(in.String())), nil
}

// Slug lowercases s and collapses every run of characters outside [a-z0-9]
// into one dash, so "full name" becomes "full-name".
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
