package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	pkgmodel "github.com/goliatone/go-workerform/pkg/model"
	"github.com/goliatone/go-workerform/pkg/worker"
)

// LauraZitelli returns the canonical valid worker fixture.
func LauraZitelli() worker.Record {
	return worker.Record{
		ID:     "1",
		Name:   worker.StringPtr("Laura Zitelli"),
		Role:   []string{"Frontend Trainee"},
		Active: false,
	}
}

// SequenceIDs is a deterministic worker.IDGenerator yielding prefix-1,
// prefix-2, and so on. Safe for concurrent use.
type SequenceIDs struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewID returns the next identifier in the sequence.
func (s *SequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "worker"
	}
	return fmt.Sprintf("%s-%d", prefix, s.next)
}

// Issued reports how many identifiers were generated.
func (s *SequenceIDs) Issued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// LoadRecord reads a YAML worker fixture.
func LoadRecord(t *testing.T, path string) worker.Record {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	var record worker.Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	return record
}

// WriteRecord writes a YAML worker fixture into dir and returns its path.
func WriteRecord(t *testing.T, dir string, record worker.Record) string {
	t.Helper()

	payload, err := yaml.Marshal(record)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	path := filepath.Join(dir, record.ID+".yaml")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return path
}

// MustLoadFormModel loads a JSON golden file into a FormModel structure.
func MustLoadFormModel(t *testing.T, path string) pkgmodel.FormModel {
	t.Helper()

	form, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return form
}

// LoadFormModel reads a JSON fixture into a FormModel.
func LoadFormModel(path string) (pkgmodel.FormModel, error) {
	if path == "" {
		return pkgmodel.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out pkgmodel.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// WriteGolden writes a value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareRecords returns a diff string if the records differ.
func CompareRecords(want, got worker.Record) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
