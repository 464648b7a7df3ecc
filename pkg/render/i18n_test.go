package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/render"
)

func TestLocalizeFormModel(t *testing.T) {
	catalog := map[string]string{
		"user.create.summary":                   "Crear",
		"user.create.fields.full_name.label":    "Nombre completo",
		"user.create.fields.kind.options.2":     "empresa",
		"user.create.fields.email.placeholder":  "tu@ejemplo.com",
	}
	translator := render.TranslatorFunc(func(locale, key string) (string, error) {
		if locale != "es" {
			return "", errors.New("unsupported locale")
		}
		if msg, ok := catalog[key]; ok {
			return msg, nil
		}
		return "", errors.New("missing")
	})

	form := model.FormModel{
		ID:          "user.create",
		Summary:     "Create",
		Description: "Create a new user",
		Fields: []model.Field{
			{Name: "email", Label: "Email"},
			{Name: "full name", Label: "Full Name"},
			{Name: "kind", Label: "Kind", Options: []model.Option{
				{Value: operation.String(""), Placeholder: true},
				{Label: "personal", Value: operation.Number(1)},
				{Label: "business", Value: operation.Number(2)},
			}},
		},
	}

	render.LocalizeFormModel(&form, render.RenderOptions{Locale: "es", Translator: translator})

	if form.Summary != "Crear" || form.Description != "Create a new user" {
		t.Fatalf("unexpected form text: %q / %q", form.Summary, form.Description)
	}
	if form.Fields[0].Placeholder != "tu@ejemplo.com" || form.Fields[0].Label != "Email" {
		t.Fatalf("unexpected email field: %+v", form.Fields[0])
	}
	if form.Fields[1].Label != "Nombre completo" {
		t.Fatalf("expected translated label, got %q", form.Fields[1].Label)
	}
	if got := form.Fields[2].Options[2].Label; got != "empresa" {
		t.Fatalf("expected translated option, got %q", got)
	}
	if got := form.Fields[2].Options[1].Label; got != "personal" {
		t.Fatalf("expected fallback option label, got %q", got)
	}
}

func TestMessageKey(t *testing.T) {
	if got := render.MessageKey("user.create", " fields ", "full name", "", "label"); got != "user.create.fields.full_name.label" {
		t.Fatalf("unexpected key %q", got)
	}
}
