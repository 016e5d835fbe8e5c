package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-workerform/schemas"
)

// Save modes.
const (
	SaveModeFile = "file"
	SaveModeHTTP = "http"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete workerform configuration.
type Config struct {
	Save    SaveConfig    `yaml:"save" json:"save"`
	Form    FormConfig    `yaml:"form" json:"form"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SaveConfig selects and configures the save service.
type SaveConfig struct {
	Mode      string        `yaml:"mode" json:"mode"`
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`
	Directory string        `yaml:"directory" json:"directory"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// FormConfig controls how the worker form is built.
type FormConfig struct {
	Schema      string   `yaml:"schema" json:"schema"`
	Component   string   `yaml:"component" json:"component"`
	SubmitGuard bool     `yaml:"submitGuard" json:"submitGuard"`
	Roles       []string `yaml:"roles" json:"roles"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Save: SaveConfig{
			Mode:      SaveModeFile,
			Endpoint:  "http://localhost:8080/workers",
			Directory: "./workers",
			Timeout:   10 * time.Second,
		},
		Form: FormConfig{
			Component: schemas.WorkerComponent,
			Roles:     []string{"Frontend Trainee", "Backend Developer"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	switch c.Save.Mode {
	case SaveModeFile:
		if strings.TrimSpace(c.Save.Directory) == "" {
			return fmt.Errorf("%w: save directory is required in file mode", ErrInvalidConfig)
		}
	case SaveModeHTTP:
		if strings.TrimSpace(c.Save.Endpoint) == "" {
			return fmt.Errorf("%w: save endpoint is required in http mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown save mode %q", ErrInvalidConfig, c.Save.Mode)
	}
	if c.Save.Timeout < 0 {
		return fmt.Errorf("%w: negative save timeout %s", ErrInvalidConfig, c.Save.Timeout)
	}
	if strings.TrimSpace(c.Form.Component) == "" {
		return fmt.Errorf("%w: form component is required", ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: invalid log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// ToYAML serialises the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// NewLogger builds a zap logger for the configured level and format.
// Console output uses the development encoder, json the production one.
func (l LoggingConfig) NewLogger() (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}

	var zc zap.Config
	if l.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger.Sugar(), nil
}
