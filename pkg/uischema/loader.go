package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{operations: make(map[string]Operation)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for opID, raw := range doc.Operations {
			id := strings.TrimSpace(opID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty operation id", path)
			}
			if !strings.Contains(id, ".") {
				return fmt.Errorf("uischema: file %s operation id %q must be <category>.<operation>", path, id)
			}
			if _, exists := store.operations[id]; exists {
				return fmt.Errorf("uischema: duplicate operation %q (file %s)", id, path)
			}

			op, err := normaliseOperation(raw, id, path)
			if err != nil {
				return err
			}
			store.operations[id] = op
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Operation returns the overlay for the supplied form id.
func (s *Store) Operation(id string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// IDs lists the form ids that carry an overlay, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.operations))
	for id := range s.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any operations.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}

type documentFile struct {
	Operations map[string]operationFile `json:"operations" yaml:"operations"`
}

type operationFile struct {
	Form   FormConfig             `json:"form" yaml:"form"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseOperation(raw operationFile, id, source string) (Operation, error) {
	op := Operation{
		ID:     id,
		Source: source,
		Form:   raw.Form,
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}

	for key, cfg := range raw.Fields {
		name := strings.TrimSpace(key)
		if name == "" {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) has an empty field key", id, source)
		}
		if _, exists := op.Fields[name]; exists {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) defines field %q twice", id, source, name)
		}
		cloned := cloneFieldConfig(cfg)
		cloned.OriginalKey = key
		op.Fields[name] = cloned
	}

	return op, nil
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	out.UIHints = cloneStrings(cfg.UIHints)
	out.Metadata = cloneStrings(cfg.Metadata)
	return out
}

func cloneStrings(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
