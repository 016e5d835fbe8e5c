package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-workerform/pkg/worker"
)

var (
	// ErrDirectoryRequired is returned when a file save service has no directory.
	ErrDirectoryRequired = errors.New("service: save directory is required")
	// ErrInvalidID is returned for identifiers that cannot be used as file names.
	ErrInvalidID = errors.New("service: invalid worker id")
)

// FileSaveService stores each worker as <dir>/<id>.yaml.
type FileSaveService struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewFileSaveService constructs a FileSaveService rooted at dir. The
// directory is created on the first save.
func NewFileSaveService(dir string, logger *zap.SugaredLogger) (*FileSaveService, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirectoryRequired
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FileSaveService{dir: dir, logger: logger}, nil
}

// SubmitWorker writes the worker atomically, replacing any previous version.
func (s *FileSaveService) SubmitWorker(ctx context.Context, values worker.Record) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.Path(values.ID)
	if err != nil {
		return false, err
	}

	payload, err := yaml.Marshal(values)
	if err != nil {
		return false, fmt.Errorf("service: encode worker: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return false, fmt.Errorf("service: create %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".worker-*.yaml")
	if err != nil {
		return false, fmt.Errorf("service: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return false, fmt.Errorf("service: write worker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("service: close worker file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("service: store worker: %w", err)
	}

	s.logger.Debugw("worker written", "worker_id", values.ID, "path", path)
	return true, nil
}

// Load reads a stored worker back.
func (s *FileSaveService) Load(id string) (worker.Record, error) {
	path, err := s.Path(id)
	if err != nil {
		return worker.Record{}, err
	}
	return ReadRecord(path)
}

// Path returns the file a worker id is stored in.
func (s *FileSaveService) Path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.dir, id+".yaml"), nil
}

// ReadRecord decodes a YAML worker file.
func ReadRecord(path string) (worker.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return worker.Record{}, fmt.Errorf("service: read worker: %w", err)
	}
	var record worker.Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return worker.Record{}, fmt.Errorf("service: decode worker %s: %w", path, err)
	}
	return record, nil
}
