package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-workerform/pkg/model"
)

func sampleForm() model.FormModel {
	return model.FormModel{
		Component: "Worker",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString},
			{Name: "role", Type: model.FieldTypeArray, Items: &model.Field{Type: model.FieldTypeString}},
		},
	}
}

func TestItemOptions(t *testing.T) {
	form := sampleForm()

	if err := model.Decorate(&form, model.ItemOptions("role", []string{"Frontend Trainee", "Reviewer"})); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	role, ok := form.Field("role")
	if !ok {
		t.Fatalf("role field missing")
	}
	if diff := cmp.Diff([]any{"Frontend Trainee", "Reviewer"}, role.Items.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestItemOptionsRejectsNonArrayFields(t *testing.T) {
	form := sampleForm()
	if err := model.ItemOptions("name", []string{"x"}).Decorate(&form); err == nil {
		t.Fatalf("expected error for non-array field")
	}
	if err := model.ItemOptions("missing", []string{"x"}).Decorate(&form); err == nil {
		t.Fatalf("expected error for missing field")
	}
}

func TestDecorateStopsAtFirstError(t *testing.T) {
	form := sampleForm()
	boom := errors.New("boom")
	called := false

	err := model.Decorate(&form,
		model.DecoratorFunc(func(*model.FormModel) error { return boom }),
		model.DecoratorFunc(func(*model.FormModel) error { called = true; return nil }),
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if called {
		t.Fatalf("expected later decorators to be skipped")
	}
}
