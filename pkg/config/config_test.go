package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Save.Mode != SaveModeFile {
		t.Errorf("expected save mode %q, got %q", SaveModeFile, cfg.Save.Mode)
	}
	if cfg.Save.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.Save.Timeout)
	}
	if cfg.Form.Component != "Worker" {
		t.Errorf("expected Worker component, got %q", cfg.Form.Component)
	}
	if cfg.Form.SubmitGuard {
		t.Errorf("expected submit guard to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
save:
  mode: http
  endpoint: https://api.example.com/workers
  timeout: 3s
form:
  submitGuard: true
  roles: [Reviewer]
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Save.Mode = SaveModeHTTP
	want.Save.Endpoint = "https://api.example.com/workers"
	want.Save.Timeout = 3 * time.Second
	want.Form.SubmitGuard = true
	want.Form.Roles = []string{"Reviewer"}
	want.Logging = LoggingConfig{Level: "debug", Format: "json"}

	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := writeConfig(t, "save: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}

	path = writeConfig(t, "save:\n  mode: ftp\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Save.Mode = "ftp" }},
		{"file mode without directory", func(c *Config) { c.Save.Directory = " " }},
		{"http mode without endpoint", func(c *Config) { c.Save.Mode = SaveModeHTTP; c.Save.Endpoint = "" }},
		{"negative timeout", func(c *Config) { c.Save.Timeout = -time.Second }},
		{"missing component", func(c *Config) { c.Form.Component = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := LoggingConfig{Level: "warn", Format: format}.NewLogger()
		if err != nil {
			t.Fatalf("%s logger: %v", format, err)
		}
		if logger.Desugar().Core().Enabled(-1) {
			t.Fatalf("%s logger should not enable debug", format)
		}
	}

	if _, err := (LoggingConfig{Level: "loud"}).NewLogger(); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestToYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	data, err := cfg.ToYAML()
	if err != nil {
		t.Fatalf("to yaml: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, *loaded); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
