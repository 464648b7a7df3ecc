package template

import (
	"io"
)

// TemplateRenderer executes a named template. Output is returned and, when
// writers are given, also written to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
}
