package validation_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-opsform/pkg/api"
	pkgmodel "github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/testsupport"
	"github.com/goliatone/go-opsform/pkg/validation"
)

func userCreateForm(t *testing.T) pkgmodel.FormModel {
	t.Helper()
	op := testsupport.MustFindOperation(t, api.Default().Operations, "user", "create")
	return testsupport.MustBuildForm(t, "user", op)
}

func TestDecode_UserCreate(t *testing.T) {
	form := userCreateForm(t)

	values := url.Values{}
	values.Set("email", "a@b.com")
	values.Set("full name", "A B")
	values.Set("password", "pw")
	values.Set("kind", "1")

	args, err := validation.Decode(form.Fields, validation.Values(values))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := operation.Args{"a@b.com", "A B", "pw", operation.Number(1)}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_CollectsEveryError(t *testing.T) {
	form := userCreateForm(t)

	_, err := validation.Decode(form.Fields, validation.Values{
		"email": {"  "},
		"kind":  {""},
	})
	if !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	verrs, ok := validation.AsErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %T", err)
	}
	want := validation.Errors{
		"email":    {validation.MsgRequired},
		"password": {validation.MsgRequired},
		"kind":     {validation.MsgRequired},
	}
	if diff := cmp.Diff(want, verrs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "kind", "password"}, verrs.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeField_Inputs(t *testing.T) {
	tests := []struct {
		name    string
		field   pkgmodel.Field
		raw     []string
		want    any
		wantErr string
	}{
		{
			name:  "optional text empty",
			field: pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindText},
			want:  "",
		},
		{
			name:  "password keeps whitespace",
			field: pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindPassword, Required: true},
			raw:   []string{" pw "},
			want:  " pw ",
		},
		{
			name:  "email ok",
			field: pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindEmail},
			raw:   []string{" a@b.com "},
			want:  "a@b.com",
		},
		{
			name:    "email display name rejected",
			field:   pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindEmail},
			raw:     []string{"Ann <a@b.com>"},
			wantErr: validation.MsgInvalidEmail,
		},
		{
			name:    "email malformed",
			field:   pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindEmail, Required: true},
			raw:     []string{"not-an-email"},
			wantErr: validation.MsgInvalidEmail,
		},
		{
			name:  "number",
			field: pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindNumber},
			raw:   []string{"2.5"},
			want:  2.5,
		},
		{
			name:  "optional number empty",
			field: pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindNumber},
			want:  float64(0),
		},
		{
			name:    "number invalid",
			field:   pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindNumber},
			raw:     []string{"NaN"},
			wantErr: validation.MsgInvalidNumber,
		},
		{
			name:  "checkbox on",
			field: pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindCheckbox},
			raw:   []string{"on"},
			want:  true,
		},
		{
			name:  "checkbox absent",
			field: pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindCheckbox},
			want:  false,
		},
		{
			name:    "required checkbox unchecked",
			field:   pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindCheckbox, Required: true},
			wantErr: validation.MsgRequired,
		},
		{
			name:    "checkbox garbage",
			field:   pkgmodel.Field{Name: "v", Control: pkgmodel.ControlInput, InputKind: operation.KindCheckbox},
			raw:     []string{"maybe"},
			wantErr: validation.MsgInvalidBool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.DecodeField(tt.field, tt.raw)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeField_Selects(t *testing.T) {
	options := []pkgmodel.Option{
		{Label: "", Value: operation.String(""), Placeholder: true},
		{Label: "personal", Value: operation.Number(1)},
		{Label: "business", Value: operation.Number(2)},
	}
	single := pkgmodel.Field{Name: "kind", Control: pkgmodel.ControlSelect, Options: options}
	required := single
	required.Required = true
	multiple := single
	multiple.Multiple = true

	tests := []struct {
		name    string
		field   pkgmodel.Field
		raw     []string
		want    any
		wantErr string
	}{
		{name: "single pick", field: single, raw: []string{"2"}, want: operation.Number(2)},
		{name: "placeholder is no selection", field: single, raw: []string{""}, want: nil},
		{name: "required placeholder rejected", field: required, raw: []string{""}, wantErr: validation.MsgRequired},
		{name: "unknown value", field: single, raw: []string{"3"}, wantErr: validation.MsgUnknownOption},
		{name: "single rejects two", field: single, raw: []string{"1", "2"}, wantErr: validation.MsgSingleOption},
		{
			name:  "multiple keeps order",
			field: multiple,
			raw:   []string{"2", "", "1"},
			want:  []operation.OptionValue{operation.Number(2), operation.Number(1)},
		},
		{name: "multiple none", field: multiple, want: []operation.OptionValue{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.DecodeField(tt.field, tt.raw)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_ArgsInvokeOperation(t *testing.T) {
	reg := api.Default().Operations
	op := testsupport.MustFindOperation(t, reg, "user", "create")
	form := testsupport.MustBuildForm(t, "user", op)

	args, err := validation.Decode(form.Fields, validation.Values{
		"email":    {"a@b.com"},
		"password": {"pw"},
		"kind":     {"2"},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	result, err := op.Invoke(testsupport.Context(), args)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if diff := cmp.Diff(operation.Result{}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	cases := []struct {
		in   any
		want []string
	}{
		{in: "x", want: []string{"x"}},
		{in: true, want: []string{"on"}},
		{in: false},
		{in: operation.Number(2), want: []string{"2"}},
		{in: operation.String("")},
		{in: []operation.OptionValue{operation.String("a"), operation.Number(1.5)}, want: []string{"a", "1.5"}},
		{in: 3.0, want: []string{"3"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, validation.Encode(tc.in)); diff != "" {
			t.Errorf("Encode(%v) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}
