package worker_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-workerform/pkg/worker"
)

func TestRecordCloneIsDeep(t *testing.T) {
	original := worker.Record{
		ID:     "1",
		Name:   worker.StringPtr("Laura Zitelli"),
		Role:   []string{"Frontend Trainee"},
		Active: false,
	}

	clone := original.Clone()
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}

	*clone.Name = "changed"
	clone.Role[0] = "changed"
	if original.DisplayName() != "Laura Zitelli" {
		t.Fatalf("expected original name to be untouched, got %q", original.DisplayName())
	}
	if original.Role[0] != "Frontend Trainee" {
		t.Fatalf("expected original role to be untouched, got %q", original.Role[0])
	}
}

func TestRecordCloneNormalisesNilRole(t *testing.T) {
	clone := worker.Record{ID: "1"}.Clone()
	if clone.Role == nil {
		t.Fatalf("expected non-nil role slice")
	}
	if clone.Name != nil {
		t.Fatalf("expected nil name to stay nil")
	}
}

func TestHasRole(t *testing.T) {
	record := worker.Record{Role: []string{"Frontend Trainee", "Reviewer"}}
	if !record.HasRole("Reviewer") {
		t.Fatalf("expected Reviewer role")
	}
	if record.HasRole("Manager") {
		t.Fatalf("did not expect Manager role")
	}
}

func TestUUIDGenerator(t *testing.T) {
	gen := worker.UUIDGenerator{}
	first := gen.NewID()
	second := gen.NewID()
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
}

func TestIDGeneratorFunc(t *testing.T) {
	gen := worker.IDGeneratorFunc(func() string { return "fixed" })
	if got := gen.NewID(); got != "fixed" {
		t.Fatalf("expected fixed, got %q", got)
	}
}
