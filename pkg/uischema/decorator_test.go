package uischema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-opsform/pkg/api"
	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/testsupport"
	"github.com/goliatone/go-opsform/pkg/uischema"
)

func mustStore(t *testing.T, doc string) *uischema.Store {
	t.Helper()
	store, err := uischema.LoadFS(fstest.MapFS{"ui.yaml": {Data: []byte(doc)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return store
}

func userCreate(t *testing.T) model.FormModel {
	t.Helper()
	op := testsupport.MustFindOperation(t, api.Default().Operations, "user", "create")
	return testsupport.MustBuildForm(t, "user", op)
}

func TestDecorator_AppliesOverlay(t *testing.T) {
	store := mustStore(t, `
operations:
  user.create:
    form:
      title: Create user
      description: Adds an account.
      submitLabel: Create
      successMessage: Done.
      icon: '<svg viewBox="0 0 24 24" onload="alert(1)"><circle cx="12" cy="8" r="4"/><script>alert(1)</script></svg>'
      uiHints:
        bogus: dropped
    fields:
      email:
        placeholder: person@example.com
        helpText: Used to sign in.
        autocomplete: email
      kind:
        label: Account kind
        widget: radio
        metadata:
          group: account
`)
	form := userCreate(t)
	original := form.Fields[0]

	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if form.Summary != "Create user" || form.Description != "Adds an account." {
		t.Fatalf("form text not applied: %q %q", form.Summary, form.Description)
	}
	if diff := cmp.Diff(map[string]string{"submitLabel": "Create", "successMessage": "Done."}, form.UIHints); diff != "" {
		t.Fatalf("form hints mismatch (-want +got):\n%s", diff)
	}

	icon := form.Metadata[uischema.IconMetadataKey]
	if !strings.Contains(icon, "<svg") || !strings.Contains(icon, "<circle") {
		t.Fatalf("icon not kept: %q", icon)
	}
	if strings.Contains(icon, "script") || strings.Contains(icon, "onload") {
		t.Fatalf("icon not sanitised: %q", icon)
	}

	email, _ := form.Field("email")
	if email.Placeholder != "person@example.com" || email.Description != "Used to sign in." {
		t.Fatalf("email overlay not applied: %+v", email)
	}
	if email.UIHints["autocomplete"] != "email" {
		t.Fatalf("autocomplete hint missing: %v", email.UIHints)
	}

	kind, _ := form.Field("kind")
	if kind.Label != "Account kind" || kind.UIHints["widget"] != "radio" || kind.Metadata["group"] != "account" {
		t.Fatalf("kind overlay not applied: %+v", kind)
	}

	password, _ := form.Field("password")
	if password.Metadata["sensitive"] != "true" {
		t.Fatalf("builder metadata lost: %v", password.Metadata)
	}
	if original.Placeholder != "" {
		t.Fatalf("decorator mutated the source field slice")
	}
}

func TestDecorator_UnknownFieldIsAnError(t *testing.T) {
	store := mustStore(t, `
operations:
  user.create:
    fields:
      nickname:
        label: Nick
`)
	form := userCreate(t)
	err := uischema.NewDecorator(store).Decorate(&form)
	if err == nil || !strings.Contains(err.Error(), "nickname") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestDecorator_NoMatchOrNilStore(t *testing.T) {
	form := userCreate(t)
	want := userCreate(t)

	if err := uischema.NewDecorator(nil).Decorate(&form); err != nil {
		t.Fatalf("nil store: %v", err)
	}
	store := mustStore(t, "operations:\n  project.rename:\n    form:\n      title: Rename\n")
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("unmatched overlay: %v", err)
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form changed (-want +got):\n%s", diff)
	}
}
