package openapi_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-opsform/pkg/api"
	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/openapi"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/registry"
)

func TestExport_UserCreate(t *testing.T) {
	doc, err := openapi.Export(api.Default().Operations, openapi.Info{Title: "Admin", Version: "1.0.0"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document does not validate: %v", err)
	}

	item := doc.Paths.Value("/api/user/create")
	if item == nil || item.Post == nil {
		t.Fatalf("POST /api/user/create missing")
	}
	if item.Post.OperationID != "user.create" {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}

	schema := item.Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	if diff := cmp.Diff([]string{"email", "password", "kind"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	password := schema.Properties["password"].Value
	if password.Format != "password" || !password.WriteOnly {
		t.Fatalf("password schema = %+v", password)
	}

	kind := schema.Properties["kind"].Value
	if !kind.Type.Is(openapi3.TypeNumber) {
		t.Fatalf("kind should be numeric, got %v", kind.Type)
	}
	if diff := cmp.Diff([]any{float64(api.KindPersonal), float64(api.KindBusiness)}, kind.Enum); diff != "" {
		t.Fatalf("kind enum mismatch (-want +got):\n%s", diff)
	}
	if kind.Title != "Kind" {
		t.Fatalf("kind title = %q", kind.Title)
	}
}

type tagArgs struct {
	Tags []operation.OptionValue
	Note string
}

func TestExport_MultiSelectAndDecorators(t *testing.T) {
	op := operation.MustNew("tag", "Tags a project.",
		[]operation.Param{
			operation.Choice("tags", operation.Select{Multiple: true, Required: true, Options: []operation.Option{
				{Text: "A", Value: operation.String("a")},
				{Text: "B", Value: operation.String("b")},
			}}),
			operation.Input("note", operation.KindText, false),
		},
		func(context.Context, tagArgs) (operation.Result, error) { return nil, nil },
	)
	reg := registry.MustNew(map[string][]operation.Operation{"project": {op}})

	relabel := model.DecoratorFunc(func(form *model.FormModel) error {
		form.Summary = "Tag project"
		return nil
	})
	doc, err := openapi.Export(reg, openapi.Info{}, openapi.WithDecorators(relabel))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	post := doc.Paths.Value("/api/project/tag").Post
	if post.Summary != "Tag project" {
		t.Fatalf("decorator not applied: %q", post.Summary)
	}
	tags := post.RequestBody.Value.Content.Get("application/json").Schema.Value.Properties["tags"].Value
	if !tags.Type.Is(openapi3.TypeArray) || tags.MinItems != 1 || !tags.UniqueItems {
		t.Fatalf("tags schema = %+v", tags)
	}
	if diff := cmp.Diff([]any{"a", "b"}, tags.Items.Value.Enum); diff != "" {
		t.Fatalf("tags enum mismatch (-want +got):\n%s", diff)
	}
	if doc.Info.Title != "opsform" || len(doc.Tags) != 1 || doc.Tags[0].Name != "project" {
		t.Fatalf("unexpected document header %+v %+v", doc.Info, doc.Tags)
	}
}

func TestMarshal(t *testing.T) {
	doc, err := openapi.Export(api.Default().Operations, openapi.Info{Title: "Admin", Version: "1.0.0"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	raw, err := openapi.MarshalJSON(doc)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version %v", decoded["openapi"])
	}

	out, err := openapi.MarshalYAML(doc)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	for _, fragment := range []string{"openapi: 3.0.3", "/api/user/create:", "operationId: user.create", `"200":`} {
		if !strings.Contains(string(out), fragment) {
			t.Errorf("yaml missing %q\n%s", fragment, out)
		}
	}

	if _, err := openapi.MarshalJSON(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
}
