package render

import (
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig flattens a theme selection into the renderer configuration.
// Variant tokens, templates and asset files override the base manifest;
// fallbacks fill partial keys neither of them define.
func ThemeConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
	}
	for key, value := range fallbacks {
		cfg.Partials[key] = value
	}

	prefix := ""
	files := map[string]string{}
	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Tokens {
			cfg.Tokens[key] = value
		}
		for key, value := range manifest.Templates {
			cfg.Partials[key] = value
		}
		prefix = manifest.Assets.Prefix
		for key, value := range manifest.Assets.Files {
			files[key] = value
		}
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				cfg.Tokens[key] = value
			}
			for key, value := range variant.Templates {
				cfg.Partials[key] = value
			}
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
			for key, value := range variant.Assets.Files {
				files[key] = value
			}
		}
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars[CSSVarName(key)] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// CSSVarName turns a token key into a custom property name.
func CSSVarName(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "--") {
		return token
	}
	return "--" + strings.ReplaceAll(token, ".", "-")
}

// CSSDeclarations renders vars as sorted "name: value;" pairs. Characters
// that could close the declaration block are dropped.
func CSSDeclarations(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	strip := strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "")
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strip.Replace(key)
		value := strings.TrimSpace(strip.Replace(vars[key]))
		if name == "" || value == "" {
			continue
		}
		parts = append(parts, name+": "+value+";")
	}
	return strings.Join(parts, " ")
}
