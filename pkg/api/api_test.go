package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-opsform/internal/logging"
	"github.com/goliatone/go-opsform/pkg/adminclient"
	"github.com/goliatone/go-opsform/pkg/api"
	"github.com/goliatone/go-opsform/pkg/operation"
)

func TestDefault_UserCreateIsFirst(t *testing.T) {
	ops, ok := api.Default().Lookup("user")
	if !ok || len(ops) == 0 {
		t.Fatalf("expected user operations")
	}
	if ops[0].Name != "create" {
		t.Fatalf("expected first operation create, got %q", ops[0].Name)
	}
	if ops[0].Desc != "Create a new user" {
		t.Fatalf("unexpected description %q", ops[0].Desc)
	}
}

func TestDefault_StructuralProperties(t *testing.T) {
	err := api.Default().Operations.Each(func(category string, op operation.Operation) error {
		if op.Arity() != len(op.Params) {
			t.Errorf("%s.%s: arity %d != %d params", category, op.Name, op.Arity(), len(op.Params))
		}
		for _, param := range op.Params {
			switch ui := param.UI.(type) {
			case operation.InputText:
				if !ui.Kind.Valid() {
					t.Errorf("%s.%s: param %q has kind %q", category, op.Name, param.Name, ui.Kind)
				}
			case operation.Select:
				if ui.Required && len(ui.Options) == 0 {
					t.Errorf("%s.%s: required select %q has no options", category, op.Name, param.Name)
				}
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("each: %v", err)
	}
}

func TestUserCreate_WithoutClientReturnsEmptyObject(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New("info", "text", &buf))

	op, ok := api.Default().Operations.Find("user", "create")
	if !ok {
		t.Fatalf("user.create missing")
	}
	result, err := op.Invoke(ctx, operation.Args{"a@b.com", "A B", "pw", 1})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if diff := cmp.Diff(operation.Result{}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	logged := buf.String()
	if !strings.Contains(logged, "email=a@b.com") {
		t.Fatalf("expected email in log, got %q", logged)
	}
	if strings.Contains(logged, "pw ") || strings.Contains(logged, "password=pw") {
		t.Fatalf("password leaked into log: %q", logged)
	}
}

func TestUserCreate_UsesAdminClient(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id":"42"}`))
	}))
	defer srv.Close()

	client, err := adminclient.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	a, err := api.New(
		api.WithAdminClient(client),
		api.WithAuthToken("admin-token"),
		api.WithLogger(logging.Discard()),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.AuthToken != "admin-token" {
		t.Fatalf("expected token on descriptor, got %q", a.AuthToken)
	}

	op, _ := a.Operations.Find("user", "create")
	result, err := op.Invoke(context.Background(), operation.Args{"a@b.com", "", "pw", operation.Number(2)})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if diff := cmp.Diff(operation.Result{"id": "42"}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if gotAuth != "admin-token" {
		t.Fatalf("expected admin token, got %q", gotAuth)
	}
	if gotBody["kind"] != float64(2) || gotBody["email"] != "a@b.com" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestWithOperations_AppendsCategory(t *testing.T) {
	type projectArgs struct {
		ID string
	}
	limits := operation.MustNew("limits", "Show project limits", []operation.Param{
		operation.Input("project id", operation.KindText, true),
	}, func(context.Context, projectArgs) (operation.Result, error) { return nil, nil })

	a, err := api.New(api.WithOperations("project", limits))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if diff := cmp.Diff([]string{"project", "user"}, a.Operations.Categories()); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}
