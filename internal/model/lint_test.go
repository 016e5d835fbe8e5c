package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

func TestLint(t *testing.T) {
	schema := pkgopenapi.Schema{
		Type: "object",
		Extensions: map[string]any{
			extensionNamespace: "not an object",
		},
		Properties: map[string]pkgopenapi.Schema{
			"name": {Type: "string", Extensions: map[string]any{
				extensionNamespace: map[string]any{"label": "Name", "widget": "textarea"},
			}},
			"role": {Type: "array", Items: &pkgopenapi.Schema{
				Type:       "string",
				Extensions: map[string]any{extensionNamespace + "-placeholder": 3.0},
			}},
			"active": {Type: "boolean", Extensions: map[string]any{
				extensionNamespace + "-label": "Active",
			}},
		},
	}

	got := Lint("Worker", schema)
	want := []Violation{
		{Location: "Worker", Message: "x-workerform must be an object, found string"},
		{Location: "Worker > name > widget", Message: `unsupported extension key "widget" (supported: label, placeholder)`},
		{Location: "Worker > role > items > placeholder", Message: `value for "placeholder" must be a string (got float64)`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLintCleanSchema(t *testing.T) {
	schema := pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"name": {Type: "string", Extensions: map[string]any{
				extensionNamespace: map[string]any{"label": "Name", "placeholder": "Full name"},
			}},
		},
	}
	if got := Lint("Worker", schema); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}
