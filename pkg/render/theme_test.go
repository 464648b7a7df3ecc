package render_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-opsform/pkg/render"
)

func TestThemeConfig_MergesVariantOverrides(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":  "#123456",
			"radius": "4px",
		},
		Templates: map[string]string{
			"forms.select": "themes/acme/select.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"vanilla.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Templates: map[string]string{
					"forms.checkbox": "themes/acme/dark/checkbox.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{"vanilla.stylesheet": "theme.dark.css"},
				},
			},
		},
	}

	cfg := render.ThemeConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest},
		map[string]string{"forms.field": "fallback/field.tmpl", "forms.select": "fallback/select.tmpl"})
	if cfg == nil {
		t.Fatalf("expected theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.Tokens["radius"] != "4px" {
		t.Fatalf("tokens not merged: %v", cfg.Tokens)
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens: %v", cfg.CSSVars)
	}
	if cfg.Partials["forms.select"] != "themes/acme/select.tmpl" {
		t.Fatalf("manifest template should override fallback, got %s", cfg.Partials["forms.select"])
	}
	if cfg.Partials["forms.checkbox"] != "themes/acme/dark/checkbox.tmpl" {
		t.Fatalf("variant template missing, got %s", cfg.Partials["forms.checkbox"])
	}
	if cfg.Partials["forms.field"] != "fallback/field.tmpl" {
		t.Fatalf("fallback partial missing, got %s", cfg.Partials["forms.field"])
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %s", got)
	}
}

func TestThemeConfig_NilSelection(t *testing.T) {
	if cfg := render.ThemeConfig(nil, nil); cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
}

func TestCSSDeclarations(t *testing.T) {
	got := render.CSSDeclarations(map[string]string{
		"--surface": "#fff",
		"--brand":   "#123456",
		"--evil":    "red;}</style><script>",
		"--empty":   " ",
	})
	want := "--brand: #123456; --evil: red/stylescript; --surface: #fff;"
	if got != want {
		t.Fatalf("declarations mismatch\nwant %q\ngot  %q", want, got)
	}
}
