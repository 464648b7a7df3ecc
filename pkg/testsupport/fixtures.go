package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/registry"
)

// MustBuildForm builds the form model for category/op with the default
// builder, failing the test on error.
func MustBuildForm(t *testing.T, category string, op operation.Operation) pkgmodel.FormModel {
	t.Helper()

	form, err := pkgmodel.NewBuilder().Build(category, op)
	if err != nil {
		t.Fatalf("build form %s.%s: %v", category, op.Name, err)
	}
	return form
}

// MustFindOperation resolves category/name in reg.
func MustFindOperation(t *testing.T, reg *registry.Registry, category, name string) operation.Operation {
	t.Helper()

	op, err := reg.Resolve(category, name)
	if err != nil {
		t.Fatalf("resolve operation: %v", err)
	}
	return op
}

// MustLoadFormModel loads a JSON golden file into a FormModel structure.
func MustLoadFormModel(t *testing.T, path string) pkgmodel.FormModel {
	t.Helper()

	form, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return form
}

// LoadFormModel reads a JSON fixture into a FormModel.
func LoadFormModel(path string) (pkgmodel.FormModel, error) {
	if path == "" {
		return pkgmodel.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out pkgmodel.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// WriteFormModel writes a form model golden when UPDATE_GOLDENS is enabled.
func WriteFormModel(t *testing.T, path string, value pkgmodel.FormModel) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal form model: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
