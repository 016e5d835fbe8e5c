package model_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-workerform/pkg/model"
	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

func TestDefaultModelFromEmbeddedSchema(t *testing.T) {
	form := model.Default()

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"id", "name", "role", "active"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name"}, form.RequiredFields()); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}

	id, _ := form.Field("id")
	if !id.ReadOnly || id.Required {
		t.Fatalf("expected id to be read-only and optional, got %+v", id)
	}
	name, _ := form.Field("name")
	if name.Placeholder != "Full name" {
		t.Fatalf("expected placeholder from extension, got %q", name.Placeholder)
	}
	if _, ok := name.Rule(model.ValidationRuleMinLength); !ok {
		t.Fatalf("expected minLength rule on name")
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	first := model.Default()
	first.Fields[1].Label = "mutated"
	first.Fields[1].Validations[0].Kind = "mutated"

	second := model.Default()
	if second.Fields[1].Label == "mutated" {
		t.Fatalf("expected Default to return a fresh copy")
	}
	if second.Fields[1].Validations[0].Kind == "mutated" {
		t.Fatalf("expected validations to be copied")
	}
}

func TestLoadFromFileWithDecorators(t *testing.T) {
	const doc = `openapi: 3.0.3
info: {title: Staff, version: 1.0.0}
paths: {}
components:
  schemas:
    Worker:
      type: object
      required: [name]
      properties:
        name: {type: string, maxLength: 80}
        role: {type: array, items: {type: string}}
`
	path := filepath.Join(t.TempDir(), "staff.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	form, err := model.Load(context.Background(), model.LoadOptions{
		Source:     pkgopenapi.SourceFromFile(path),
		Decorators: []model.Decorator{model.ItemOptions("role", []string{"Ops"})},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	name, ok := form.Field("name")
	if !ok {
		t.Fatalf("expected name field")
	}
	rule, ok := name.Rule(model.ValidationRuleMaxLength)
	if !ok || rule.Params["value"] != "80" {
		t.Fatalf("expected maxLength 80, got %+v", rule)
	}
	role, _ := form.Field("role")
	if diff := cmp.Diff([]any{"Ops"}, role.Items.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUnknownComponent(t *testing.T) {
	if _, err := model.Load(context.Background(), model.LoadOptions{Component: "Manager"}); err == nil {
		t.Fatalf("expected error for unknown component")
	}
}

func TestLintEmbeddedSchemaIsClean(t *testing.T) {
	violations, err := model.Lint(context.Background(), model.LoadOptions{})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected embedded schema to be clean, got %v", violations)
	}
}

type cachingParser struct {
	schema pkgopenapi.Schema
}

func (p *cachingParser) Component(context.Context, pkgopenapi.Document, string) (pkgopenapi.Schema, error) {
	return p.schema, nil
}

type pruningBuilder struct {
	next model.Builder
}

func (b pruningBuilder) Build(component string, schema pkgopenapi.Schema) (model.FormModel, error) {
	delete(schema.Properties, "active")
	schema.Required[0] = "role"
	schema.Properties["role"].Items.Type = "integer"
	return b.next.Build(component, schema)
}

func TestLoadGivesBuilderItsOwnSchema(t *testing.T) {
	parser := &cachingParser{schema: pkgopenapi.Schema{
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]pkgopenapi.Schema{
			"name":   {Type: "string"},
			"role":   {Type: "array", Items: &pkgopenapi.Schema{Type: "string"}},
			"active": {Type: "boolean"},
		},
	}}
	opts := model.LoadOptions{
		Parser:  parser,
		Builder: pruningBuilder{next: model.NewBuilder(model.WithFieldOrder(model.DefaultFieldOrder...))},
	}

	for i := 0; i < 2; i++ {
		form, err := model.Load(context.Background(), opts)
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if _, ok := form.Field("active"); ok {
			t.Fatalf("load %d: expected builder edits to apply to its copy", i)
		}
	}

	if _, ok := parser.schema.Properties["active"]; !ok {
		t.Fatalf("builder removed a property from the parser's schema")
	}
	if diff := cmp.Diff([]string{"name"}, parser.schema.Required); diff != "" {
		t.Fatalf("parser required list changed (-want +got):\n%s", diff)
	}
	if got := parser.schema.Properties["role"].Items.Type; got != "string" {
		t.Fatalf("parser item schema changed, got type %q", got)
	}
}
