package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-workerform/pkg/model"
	"github.com/goliatone/go-workerform/pkg/prompt"
	"github.com/goliatone/go-workerform/pkg/service"
	"github.com/goliatone/go-workerform/pkg/testsupport"
	"github.com/goliatone/go-workerform/pkg/worker"
)

type scriptedDriver struct {
	inputs  []string
	confirm []bool
	multi   [][]int
}

func (s *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[0]
	s.confirm = s.confirm[1:]
	return val, nil
}

func (s *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	if len(s.multi) == 0 {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multi[0]
	s.multi = s.multi[1:]
	return val, nil
}

func (s *scriptedDriver) Info(context.Context, string) error { return nil }

func writeConfig(t *testing.T, dir string) string {
	t.Helper()

	content := fmt.Sprintf("save:\n  mode: file\n  directory: %q\n", filepath.Join(dir, "workers"))
	path := filepath.Join(dir, "workerform.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, args []string, options ...Option) (string, error) {
	t.Helper()

	options = append([]Option{WithLogger(zap.NewNop().Sugar())}, options...)
	cmd := NewRootCmd(options...)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewNonInteractive(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	out, err := run(t, []string{"new", "--config", cfgPath, "--non-interactive",
		"--name", "Laura Zitelli", "--role", "Frontend Trainee,Reviewer", "--inactive"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.Contains(out, "saved (Laura Zitelli)") {
		t.Fatalf("expected confirmation, got %q", out)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "workers"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one stored worker, got %v (%v)", entries, err)
	}
	stored, err := service.ReadRecord(filepath.Join(dir, "workers", entries[0].Name()))
	if err != nil {
		t.Fatalf("read worker: %v", err)
	}
	if stored.ID == "" || stored.Active {
		t.Fatalf("unexpected stored worker %+v", stored)
	}
	if diff := cmp.Diff([]string{"Frontend Trainee", "Reviewer"}, stored.Role); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}
}

func TestNewNonInteractiveWithoutNameFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	_, err := run(t, []string{"new", "--config", cfgPath, "--non-interactive"})
	if !errors.Is(err, ErrFormInvalid) {
		t.Fatalf("expected ErrFormInvalid, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "workers")); !os.IsNotExist(statErr) {
		t.Fatalf("expected nothing to be saved")
	}
}

func TestEditInteractive(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	source := testsupport.WriteRecord(t, dir, testsupport.LauraZitelli())

	driver := &scriptedDriver{
		inputs:  []string{"Laura Z."},
		multi:   [][]int{{0, 1}},
		confirm: []bool{true},
	}
	if _, err := run(t, []string{"edit", source, "--config", cfgPath}, WithPromptDriver(driver)); err != nil {
		t.Fatalf("edit: %v", err)
	}

	stored := testsupport.LoadRecord(t, filepath.Join(dir, "workers", "1.yaml"))
	want := worker.Record{
		ID:     "1",
		Name:   worker.StringPtr("Laura Z."),
		Role:   []string{"Frontend Trainee", "Backend Developer"},
		Active: true,
	}
	if diff := testsupport.CompareRecords(want, stored); diff != "" {
		t.Fatalf("stored worker mismatch (-want +got):\n%s", diff)
	}
}

func TestEditMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	if _, err := run(t, []string{"edit", filepath.Join(dir, "nope.yaml"), "--config", cfgPath}); err == nil {
		t.Fatalf("expected error for missing worker file")
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, []string{"schema"})
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	var form model.FormModel
	if err := json.Unmarshal([]byte(out), &form); err != nil {
		t.Fatalf("decode schema output: %v", err)
	}
	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff(model.DefaultFieldOrder, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := run(t, []string{"schema", "--config", path}); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestLintCommand(t *testing.T) {
	if _, err := run(t, []string{"lint"}); err != nil {
		t.Fatalf("lint embedded schema: %v", err)
	}

	schema := `openapi: 3.0.3
info: {title: Staff, version: 1.0.0}
paths: {}
components:
  schemas:
    Worker:
      type: object
      properties:
        name:
          type: string
          x-workerform:
            widget: textarea
`
	path := filepath.Join(t.TempDir(), "staff.yaml")
	if err := os.WriteFile(path, []byte(schema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	out, err := run(t, []string{"lint", path})
	if !errors.Is(err, ErrLintViolations) {
		t.Fatalf("expected ErrLintViolations, got %v", err)
	}
	if !strings.Contains(out, `Worker > name > widget -> unsupported extension key "widget"`) {
		t.Fatalf("expected violation in output, got %q", out)
	}
}
