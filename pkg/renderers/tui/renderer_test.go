package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-opsform/pkg/api"
	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/testsupport"
	"github.com/goliatone/go-opsform/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	selectIdx    []int
	multiIdx     [][]int
	infoMessages []string

	inputConfigs  []InputConfig
	selectConfigs []SelectConfig

	inputPos   int
	passPos    int
	confirmPos int
	selectPos  int
	multiPos   int
	err        error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func userCreateForm(t *testing.T) model.FormModel {
	t.Helper()
	ops, ok := api.Default().Lookup("user")
	if !ok {
		t.Fatalf("user category missing")
	}
	return testsupport.MustBuildForm(t, "user", ops[0])
}

func TestRender_UserCreateJSON(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "a@b.com", "A B"},
		passwords: []string{"pw"},
		selectIdx: []int{1},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), userCreateForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"email":"a@b.com","full name":"A B","kind":2,"password":"pw"}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"personal", "business"}, driver.selectConfigs[0].Options); diff != "" {
		t.Fatalf("required select should not offer an empty choice (-want +got):\n%s", diff)
	}
	if !containsMessage(driver.infoMessages, "Invalid Email: is required") {
		t.Fatalf("expected required message, got %v", driver.infoMessages)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestCollect_UsesPrefillAndShowsErrors(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"a@b.com", ""},
		passwords: []string{"pw"},
		selectIdx: []int{0},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	values, err := r.Collect(context.Background(), userCreateForm(t), render.RenderOptions{
		Values:     map[string][]string{"email": {"old@b.com"}, "kind": {"2"}},
		Errors:     map[string][]string{"email": {"already taken"}},
		FormErrors: []string{"admin API unavailable"},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if driver.inputConfigs[0].Default != "old@b.com" {
		t.Fatalf("expected prefilled default, got %q", driver.inputConfigs[0].Default)
	}
	if driver.inputConfigs[0].Message != "Email *" {
		t.Fatalf("expected required marker in prompt, got %q", driver.inputConfigs[0].Message)
	}
	if driver.selectConfigs[0].DefaultIndex != 1 {
		t.Fatalf("expected business preselected, got %d", driver.selectConfigs[0].DefaultIndex)
	}
	if !containsMessage(driver.infoMessages, "admin API unavailable") || !containsMessage(driver.infoMessages, "Email already taken") {
		t.Fatalf("expected errors surfaced, got %v", driver.infoMessages)
	}

	want := validation.Values{
		"email":     {"a@b.com"},
		"full name": {""},
		"password":  {"pw"},
		"kind":      {"1"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OptionalAndMultipleSelects(t *testing.T) {
	form := model.FormModel{
		ID: "project.tags",
		Fields: []model.Field{
			{
				Name:     "tier",
				Label:    "Tier",
				Position: 0,
				Control:  model.ControlSelect,
				Type:     model.FieldTypeString,
				Options: []model.Option{
					{Placeholder: true, Value: operation.String("")},
					{Label: "Gold", Value: operation.String("gold")},
				},
			},
			{
				Name:     "tags",
				Label:    "Tags",
				Position: 1,
				Control:  model.ControlSelect,
				Type:     model.FieldTypeArray,
				Multiple: true,
				Options: []model.Option{
					{Label: "A", Value: operation.String("a")},
					{Label: "B", Value: operation.String("b")},
					{Label: "C", Value: operation.String("c")},
				},
			},
			{
				Name:      "notify",
				Label:     "Notify",
				Position:  2,
				Control:   model.ControlInput,
				Type:      model.FieldTypeBoolean,
				InputKind: operation.KindCheckbox,
			},
		},
	}

	driver := &stubDriver{
		selectIdx: []int{0},
		multiIdx:  [][]int{{0, 2}},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"notify":true,"tags":["a","c"],"tier":null}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{noneOption, "Gold"}, driver.selectConfigs[0].Options); diff != "" {
		t.Fatalf("optional select options mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OutputFormats(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
		want   string
	}{
		{
			name:   "form",
			format: OutputFormatFormURLEncoded,
			want:   "email=a%40b.com&full+name=A+B&kind=2&password=pw",
		},
		{
			name:   "pretty",
			format: OutputFormatPrettyText,
			want:   "Email: a@b.com\nFull Name: A B\nPassword: ***\nKind: business\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &stubDriver{
				inputs:    []string{"a@b.com", "A B"},
				passwords: []string{"pw"},
				selectIdx: []int{1},
			}
			r, err := New(WithPromptDriver(driver), WithOutputFormat(tt.format))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			out, err := r.Render(context.Background(), userCreateForm(t), render.RenderOptions{})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(out)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"a@b.com", ""},
		passwords: []string{"pw"},
		selectIdx: []int{0},
	}
	r, err := New(WithPromptDriver(driver), WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
		delete(values, "password")
		return values, nil
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), userCreateForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "password") {
		t.Fatalf("transformer not applied: %s", out)
	}
}

func TestRender_Errors(t *testing.T) {
	t.Run("too many attempts", func(t *testing.T) {
		driver := &stubDriver{inputs: []string{"", ""}}
		r, _ := New(WithPromptDriver(driver), WithMaxAttempts(2))
		_, err := r.Render(context.Background(), userCreateForm(t), render.RenderOptions{})
		if !errors.Is(err, ErrTooManyAttempts) {
			t.Fatalf("expected ErrTooManyAttempts, got %v", err)
		}
	})

	t.Run("aborted", func(t *testing.T) {
		driver := &stubDriver{err: ErrAborted}
		r, _ := New(WithPromptDriver(driver))
		_, err := r.Render(context.Background(), userCreateForm(t), render.RenderOptions{})
		if !errors.Is(err, ErrAborted) {
			t.Fatalf("expected ErrAborted, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r, _ := New(WithPromptDriver(&stubDriver{}))
		if _, err := r.Render(ctx, userCreateForm(t), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := New(WithOutputFormat("xml")); err == nil {
			t.Fatalf("expected error for unknown output format")
		}
	})
}

func containsMessage(messages []string, fragment string) bool {
	for _, msg := range messages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func TestTextValidator(t *testing.T) {
	var seen []string
	validate := textValidator(func(s string) error {
		seen = append(seen, s)
		if s == "" {
			return errors.New(validation.MsgRequired)
		}
		return nil
	})

	if err := validate("a@b.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validate(""); err == nil || err.Error() != validation.MsgRequired {
		t.Fatalf("expected required error, got %v", err)
	}
	if err := validate(42); err == nil {
		t.Fatalf("expected error for non-text answer")
	}
	if diff := cmp.Diff([]string{"a@b.com", ""}, seen); diff != "" {
		t.Fatalf("validated answers mismatch (-want +got):\n%s", diff)
	}
}
