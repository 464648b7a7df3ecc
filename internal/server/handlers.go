package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-opsform/internal/logging"
	"github.com/goliatone/go-opsform/pkg/journal"
	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/openapi"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/orchestrator"
	"github.com/goliatone/go-opsform/pkg/registry"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/renderers/vanilla"
	"github.com/goliatone/go-opsform/pkg/validation"
)

const maxJournalLimit = 500

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ops := s.orch.Operations()
	categories := make([]map[string]any, 0, ops.Len())
	for _, category := range ops.Categories() {
		list, _ := ops.Lookup(category)
		entries := make([]map[string]any, 0, len(list))
		for _, op := range list {
			entries = append(entries, map[string]any{
				"name":        op.Name,
				"description": op.Desc,
				"href":        formPath(category, op.Name),
			})
		}
		categories = append(categories, map[string]any{"name": category, "operations": entries})
	}

	page, err := s.pages.RenderTemplate(indexTemplate, map[string]any{
		"title":      s.info.Title,
		"stylesheet": vanilla.StylesheetName,
		"categories": categories,
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	category, name := r.PathValue("category"), r.PathValue("name")
	s.renderForm(w, r, http.StatusOK, category, name, render.RenderOptions{
		Values: r.URL.Query(),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	category, name := r.PathValue("category"), r.PathValue("name")
	wantsJSON := isJSON(r.Header.Get("Content-Type")) || strings.Contains(r.Header.Get("Accept"), "application/json")

	values, err := s.submittedValues(w, r, category, name)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	outcome, err := s.orch.Submit(r.Context(), orchestrator.Submission{
		Category:  category,
		Operation: name,
		Values:    values,
		Actor:     actorFor(r),
		Token:     r.Header.Get("Authorization"),
	})

	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, orchestrator.ErrInvalidSubmission):
		status = http.StatusUnprocessableEntity
	case !outcome.Errors.Empty():
		status = http.StatusBadGateway
	default:
		s.fail(w, r, statusFor(err), err)
		return
	}

	if wantsJSON {
		writeJSON(w, status, outcome)
		return
	}

	opts := render.RenderOptions{}
	if status == http.StatusOK {
		opts.Result = outcome.Result
		if opts.Result == nil {
			opts.Result = operation.Result{}
		}
	} else {
		opts.Values = values
		outcome.Errors.Apply(&opts)
	}
	s.renderForm(w, r, status, category, name, opts)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, category, name string, opts render.RenderOptions) {
	opts.Action = formPath(category, name)
	output, err := s.orch.Generate(r.Context(), orchestrator.Request{
		Category:      category,
		Operation:     name,
		Renderer:      "vanilla",
		RenderOptions: opts,
		ThemeName:     r.URL.Query().Get("theme"),
		ThemeVariant:  r.URL.Query().Get("variant"),
	})
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	page, err := s.pages.RenderTemplate(pageTemplate, map[string]any{
		"title": model.FormID(category, name),
		"form":  string(output),
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeHTML(w, status, page)
}

// submittedValues reads an urlencoded form or a JSON object. JSON values are
// converted to the strings a browser would submit.
func (s *Server) submittedValues(w http.ResponseWriter, r *http.Request, category, name string) (validation.Values, error) {
	if !isJSON(r.Header.Get("Content-Type")) {
		if err := r.ParseForm(); err != nil {
			return nil, badRequest{err}
		}
		return validation.Values(r.PostForm), nil
	}

	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		return nil, badRequest{err}
	}
	form, _, err := s.orch.Form(r.Context(), category, name)
	if err != nil {
		return nil, err
	}
	values := make(validation.Values, len(body))
	for _, field := range form.Fields {
		raw, ok := body[field.Name]
		if !ok {
			continue
		}
		values[field.Name] = encodeJSONValue(field, raw)
	}
	return values, nil
}

func encodeJSONValue(field model.Field, raw any) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, validation.Encode(item)...)
		}
		return out
	case bool:
		if field.InputKind == operation.KindCheckbox && !v {
			return []string{"false"}
		}
		return validation.Encode(v)
	default:
		return validation.Encode(v)
	}
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := openapi.Export(s.orch.Operations(), s.info, openapi.WithDecorators(s.orch.Decorators()...))
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	data, err := openapi.MarshalJSON(doc)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	limit := journal.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(w, r, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(n, maxJournalLimit)
	}
	entries, err := s.orch.Journal().Recent(r.Context(), limit)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
	} else {
		logger.Warn("request rejected", slog.Any("error", err))
	}
	http.Error(w, err.Error(), status)
}

type badRequest struct{ err error }

func (e badRequest) Error() string { return "invalid request body: " + e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func statusFor(err error) int {
	var bad badRequest
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrCategoryNotFound), errors.Is(err, registry.ErrOperationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func formPath(category, name string) string {
	return "/ops/" + category + "/" + name
}

func actorFor(r *http.Request) string {
	if user := r.Header.Get("X-Forwarded-User"); user != "" {
		return user
	}
	return r.RemoteAddr
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
