package model_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-opsform/pkg/api"
	pkgmodel "github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/testsupport"
)

func TestBuilder_UserCreate(t *testing.T) {
	op := testsupport.MustFindOperation(t, api.Default().Operations, "user", "create")

	form, err := pkgmodel.NewBuilder().Build("user", op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	goldenPath := filepath.Join("testdata", "user_create_formmodel.golden.json")
	testsupport.WriteFormModel(t, goldenPath, form)
	want := testsupport.MustLoadFormModel(t, goldenPath)

	if diff := testsupport.CompareGolden(want, form); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_FieldsFollowParamOrder(t *testing.T) {
	type args struct {
		Subscribe bool
		Limit     float64
		Contact   string
		Tags      []string
	}
	op := operation.MustNew("configure", "", []operation.Param{
		operation.Input("subscribe", operation.KindCheckbox, false),
		operation.Input("limit", operation.KindNumber, true),
		operation.Input("contact", operation.KindEmail, false),
		operation.Choice("tags", operation.Select{
			Multiple: true,
			Options: []operation.Option{
				{Text: "alpha", Value: operation.String("a")},
				{Text: "beta", Value: operation.String("b")},
			},
		}),
	}, func(context.Context, args) (operation.Result, error) { return nil, nil })

	form, err := pkgmodel.NewBuilder(pkgmodel.WithEndpointPrefix("/admin")).Build("project", op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Endpoint != "/admin/project/configure" {
		t.Fatalf("unexpected endpoint %q", form.Endpoint)
	}

	wantTypes := []pkgmodel.FieldType{
		pkgmodel.FieldTypeBoolean,
		pkgmodel.FieldTypeNumber,
		pkgmodel.FieldTypeString,
		pkgmodel.FieldTypeArray,
	}
	for i, field := range form.Fields {
		if field.Position != i {
			t.Errorf("field %q position %d, want %d", field.Name, field.Position, i)
		}
		if field.Type != wantTypes[i] {
			t.Errorf("field %q type %q, want %q", field.Name, field.Type, wantTypes[i])
		}
	}

	tags, _ := form.Field("tags")
	if !tags.IsSelect() || !tags.Multiple || len(tags.Choices()) != 2 {
		t.Fatalf("unexpected tags field: %+v", tags)
	}
	contact, _ := form.Field("contact")
	if contact.UIHints["inputType"] != "email" {
		t.Fatalf("expected email input type hint, got %v", contact.UIHints)
	}
}

func TestBuilder_CustomLabeler(t *testing.T) {
	op := testsupport.MustFindOperation(t, api.Default().Operations, "user", "create")

	form, err := pkgmodel.NewBuilder(pkgmodel.WithLabeler(strings.ToUpper)).Build("user", op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Fields[1].Label != "FULL NAME" {
		t.Fatalf("expected custom label, got %q", form.Fields[1].Label)
	}
}

func TestBuilder_RejectsInvalidInput(t *testing.T) {
	builder := pkgmodel.NewBuilder()
	op := testsupport.MustFindOperation(t, api.Default().Operations, "user", "create")

	if _, err := builder.Build("", op); err == nil {
		t.Fatalf("expected error for empty category")
	}
	if _, err := builder.Build("user", operation.Operation{}); err == nil {
		t.Fatalf("expected error for unnamed operation")
	}
	bad := operation.Operation{Name: "broken", Params: []operation.Param{
		operation.Input("v", operation.InputKind("color"), false),
	}}
	if _, err := builder.Build("user", bad); err == nil {
		t.Fatalf("expected error for unknown input kind")
	}
}
