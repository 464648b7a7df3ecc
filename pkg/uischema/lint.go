package uischema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/registry"
)

// Violation is one problem found by Lint.
type Violation struct {
	Source   string
	Location string
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.Source, v.Location, v.Message)
}

// Lint checks every overlay in store against the operations in reg. It
// reports overlays for operations that do not exist, fields the operation
// does not declare and hint keys renderers ignore. Violations are sorted by
// source, location, then message.
func Lint(store *Store, reg *registry.Registry, builder model.Builder) ([]Violation, error) {
	if store.Empty() {
		return nil, nil
	}
	if builder == nil {
		builder = model.NewBuilder()
	}

	allowed := make(map[string]struct{})
	for _, key := range model.AllowedUIHintKeys() {
		allowed[key] = struct{}{}
	}

	var violations []Violation
	for _, id := range store.IDs() {
		overlay, _ := store.Operation(id)
		category, name, _ := strings.Cut(id, ".")

		op, ok := reg.Find(category, name)
		if !ok {
			violations = append(violations, Violation{Source: overlay.Source, Location: id, Message: "no such operation"})
			continue
		}
		form, err := builder.Build(category, op)
		if err != nil {
			return nil, fmt.Errorf("uischema: lint %s: %w", id, err)
		}

		for _, key := range unknownHints(overlay.Form.UIHints, allowed) {
			violations = append(violations, Violation{Source: overlay.Source, Location: id + ".form", Message: fmt.Sprintf("unsupported uiHint %q", key)})
		}
		for fieldName, cfg := range overlay.Fields {
			location := id + ".fields." + fieldName
			if _, ok := form.Field(fieldName); !ok {
				violations = append(violations, Violation{Source: overlay.Source, Location: location, Message: "unknown field"})
				continue
			}
			for _, key := range unknownHints(cfg.UIHints, allowed) {
				violations = append(violations, Violation{Source: overlay.Source, Location: location, Message: fmt.Sprintf("unsupported uiHint %q", key)})
			}
		}
	}

	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Message < b.Message
	})
	return violations, nil
}

func unknownHints(hints map[string]string, allowed map[string]struct{}) []string {
	var out []string
	for key := range hints {
		if _, ok := allowed[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
