package opsform_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-opsform"
	"github.com/goliatone/go-opsform/pkg/orchestrator"
	"github.com/goliatone/go-opsform/pkg/renderers/vanilla"
)

func TestGenerateHTML_DefaultOperations(t *testing.T) {
	html, err := opsform.GenerateHTML(context.Background(), "user", "create")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), `data-form-id="user.create"`) {
		t.Fatalf("unexpected output:\n%s", html)
	}
}

func TestSubmit_ReportsInvalidValues(t *testing.T) {
	outcome, err := opsform.Submit(context.Background(), opsform.Submission{
		Category:  "user",
		Operation: "create",
		Values:    map[string][]string{"email": {"a@b.com"}},
	})
	if !errors.Is(err, orchestrator.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	if len(outcome.Errors.Fields["password"]) == 0 {
		t.Fatalf("expected password error, got %+v", outcome.Errors)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(opsform.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("form template missing: %v", err)
	}
	if _, err := fs.Stat(opsform.AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
}
