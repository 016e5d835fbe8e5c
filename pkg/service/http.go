package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-workerform/pkg/worker"
)

// ErrEndpointRequired is returned when an HTTP save service has no endpoint.
var ErrEndpointRequired = errors.New("service: save endpoint is required")

const maxErrorBody = 64 << 10

// ValidationError is returned when the worker API rejects a payload with
// per-field messages.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("service: worker rejected (status %d): invalid %s", e.StatusCode, strings.Join(names, ", "))
}

// FieldErrors exposes the field payload for form.State.ApplyServerErrors.
func (e *ValidationError) FieldErrors() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for key, messages := range e.Fields {
		out[key] = append([]string(nil), messages...)
	}
	return out
}

// StatusError reports an unexpected response status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("service: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("service: unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPOption customises an HTTPSaveService.
type HTTPOption func(*HTTPSaveService)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSaveService) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout bounds each save request. Zero disables the bound.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSaveService) {
		s.timeout = timeout
	}
}

// WithHTTPLogger injects a structured logger.
func WithHTTPLogger(logger *zap.SugaredLogger) HTTPOption {
	return func(s *HTTPSaveService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExisting marks the worker as already persisted so saves use PUT.
func WithExisting(existing bool) HTTPOption {
	return func(s *HTTPSaveService) {
		s.existing = existing
	}
}

// HTTPSaveService saves workers against a JSON API. New workers are POSTed to
// the endpoint; existing workers are PUT to endpoint/{id}.
type HTTPSaveService struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	logger   *zap.SugaredLogger

	mu       sync.Mutex
	existing bool
}

// NewHTTPSaveService constructs an HTTPSaveService for endpoint.
func NewHTTPSaveService(endpoint string, options ...HTTPOption) (*HTTPSaveService, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("service: parse endpoint %q: %w", endpoint, err)
	}

	s := &HTTPSaveService{
		endpoint: endpoint,
		client:   http.DefaultClient,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// SubmitWorker sends the worker to the API. A 2xx response is success; a 422
// with an `errors` object yields a *ValidationError.
func (s *HTTPSaveService) SubmitWorker(ctx context.Context, values worker.Record) (bool, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return false, fmt.Errorf("service: encode worker: %w", err)
	}

	method, target := http.MethodPost, s.endpoint
	if s.isExisting() {
		method, target = http.MethodPut, s.endpoint+"/"+url.PathEscape(values.ID)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("service: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	s.logger.Debugw("sending worker", "method", method, "url", target, "worker_id", values.ID)
	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("service: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return false, fmt.Errorf("service: read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// A worker created via POST is updated via PUT from now on.
		s.mu.Lock()
		s.existing = true
		s.mu.Unlock()
		return true, nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		fields, ok := decodeFieldErrors(body)
		if ok {
			return false, &ValidationError{StatusCode: resp.StatusCode, Fields: fields}
		}
	}
	return false, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func (s *HTTPSaveService) isExisting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing
}

func decodeFieldErrors(body []byte) (map[string][]string, bool) {
	var envelope struct {
		Errors map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return nil, false
	}

	out := make(map[string][]string, len(envelope.Errors))
	for key, raw := range envelope.Errors {
		var many []string
		if err := json.Unmarshal(raw, &many); err == nil {
			out[key] = many
			continue
		}
		var one string
		if err := json.Unmarshal(raw, &one); err == nil {
			out[key] = []string{one}
		}
	}
	return out, len(out) > 0
}
