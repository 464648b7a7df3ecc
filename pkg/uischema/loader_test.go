package uischema

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFS_YAMLAndJSON(t *testing.T) {
	files := fstest.MapFS{
		"user.yaml": {Data: []byte(`
operations:
  user.create:
    form:
      title: Create user
    fields:
      email:
        placeholder: person@example.com
`)},
		"nested/project.json": {Data: []byte(`{"operations":{"project.rename":{"form":{"submitLabel":"Rename"},"fields":{"name":{"widget":"text"}}}}}`)},
		"README.md":           {Data: []byte("ignored")},
	}

	store, err := LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"project.rename", "user.create"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	op, ok := store.Operation("user.create")
	if !ok {
		t.Fatalf("user.create missing")
	}
	if op.Source != "user.yaml" || op.Form.Title != "Create user" {
		t.Fatalf("unexpected operation %+v", op)
	}
	if op.Fields["email"].Placeholder != "person@example.com" || op.Fields["email"].OriginalKey != "email" {
		t.Fatalf("unexpected field config %+v", op.Fields["email"])
	}

	rename, _ := store.Operation("project.rename")
	if rename.Form.SubmitLabel != "Rename" || rename.Fields["name"].Widget != "text" {
		t.Fatalf("unexpected json operation %+v", rename)
	}
}

func TestLoadFS_NilAndEmpty(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	var nilStore *Store
	if _, ok := nilStore.Operation("user.create"); ok {
		t.Fatalf("nil store should not find operations")
	}
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
		want  string
	}{
		{
			name: "duplicate operation across files",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("operations:\n  user.create:\n    form:\n      title: A\n")},
				"b.yaml": {Data: []byte("operations:\n  user.create:\n    form:\n      title: B\n")},
			},
			want: `duplicate operation "user.create"`,
		},
		{
			name: "duplicate field after trimming",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("operations:\n  user.create:\n    fields:\n      email:\n        label: A\n      ' email':\n        label: B\n")},
			},
			want: `defines field "email" twice`,
		},
		{
			name:  "id without category",
			files: fstest.MapFS{"a.yaml": {Data: []byte("operations:\n  create:\n    form:\n      title: A\n")}},
			want:  "must be <category>.<operation>",
		},
		{
			name:  "empty file",
			files: fstest.MapFS{"a.json": {Data: []byte("  ")}},
			want:  "is empty",
		},
		{
			name:  "invalid json",
			files: fstest.MapFS{"a.json": {Data: []byte("{")}},
			want:  "parse a.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.files)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEmbeddedFS_Loads(t *testing.T) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if _, ok := store.Operation("user.create"); !ok {
		t.Fatalf("embedded overlay for user.create missing")
	}
}
