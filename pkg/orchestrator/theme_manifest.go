package orchestrator

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// ParseThemeManifest decodes a YAML theme manifest:
//
//	name: acme
//	version: 1.0.0
//	tokens: {brand: "#123456"}
//	templates: {forms.select: themes/acme/select.tmpl}
//	variants:
//	  dark:
//	    tokens: {brand: "#654321"}
func ParseThemeManifest(data []byte) (*theme.Manifest, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("orchestrator: parse theme manifest: %w", err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("orchestrator: theme manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:      strings.TrimSpace(raw.Name),
		Version:   raw.Version,
		Tokens:    raw.Tokens,
		Templates: raw.Templates,
		Assets:    theme.Assets{Prefix: raw.Assets.Prefix, Files: raw.Assets.Files},
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, variant := range raw.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadThemeManifest reads and parses a manifest file from disk.
func LoadThemeManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read theme manifest: %w", err)
	}
	return ParseThemeManifest(data)
}
