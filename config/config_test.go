package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/compose/errors"
)

type stepConfig struct {
	Kind  string `mapstructure:"kind" validate:"required,oneof=multiply add"`
	Value int    `mapstructure:"value"`
}

type demoConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Pipeline      struct {
		Name  string       `mapstructure:"name" validate:"required"`
		Input int          `mapstructure:"input"`
		Steps []stepConfig `mapstructure:"steps" validate:"min=1,dive"`
	} `mapstructure:"pipeline"`
}

const demoYAML = `
name: compose-demo
environment: staging
logging:
  level: debug
  format: json
metrics:
  enabled: false
  interval: 30s
pipeline:
  name: score
  input: 5
  steps:
    - kind: multiply
      value: 2
    - kind: add
      value: 10
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_TimestampOffSurvivesDefaults(t *testing.T) {
	yml := strings.Replace(demoYAML, "  format: json\n", "  format: json\n  timestamp: false\n", 1)
	path := writeFile(t, t.TempDir(), "config.yml", yml)

	var cfg demoConfig
	if err := Load("compose-demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Timestamp == nil || *cfg.Logging.Timestamp {
		t.Errorf("expected timestamp: false to be kept, got %v", cfg.Logging.Timestamp)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", demoYAML)

	var cfg demoConfig
	if err := Load("compose-demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "compose-demo" || cfg.Environment != "staging" {
		t.Errorf("unexpected base config %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Metrics.Interval != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", cfg.Metrics.Interval)
	}
	if cfg.Pipeline.Input != 5 || len(cfg.Pipeline.Steps) != 2 || cfg.Pipeline.Steps[1].Value != 10 {
		t.Errorf("unexpected pipeline config %+v", cfg.Pipeline)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", demoYAML)

	var cfg demoConfig
	if err := Load("compose-demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.ServiceName != "compose-demo" {
		t.Errorf("expected logging service name from base name, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Metrics.Endpoint != "localhost:4318" || cfg.Metrics.Environment != "staging" {
		t.Errorf("unexpected metrics defaults %+v", cfg.Metrics.MeterConfig)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", demoYAML)
	t.Setenv("COMPOSE_DEMO_PIPELINE_INPUT", "7")
	t.Setenv("COMPOSE_DEMO_LOGGING_LEVEL", "warn")
	t.Setenv("COMPOSE_DEMO_METRICS_ENABLED", "true")

	var cfg demoConfig
	if err := Load("compose-demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pipeline.Input != 7 {
		t.Errorf("expected env input 7, got %d", cfg.Pipeline.Input)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env level warn, got %q", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Error("expected metrics enabled from env")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", demoYAML)
	envPath := writeFile(t, dir, ".env", "COMPOSE_DEMO_PIPELINE_NAME=from-env-file\n")
	t.Cleanup(func() { os.Unsetenv("COMPOSE_DEMO_PIPELINE_NAME") })

	var cfg demoConfig
	if err := Load("compose-demo", &cfg, WithConfigFile(path), WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pipeline.Name != "from-env-file" {
		t.Errorf("expected name from .env, got %q", cfg.Pipeline.Name)
	}
}

func TestLoadValidationFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
name: compose-demo
environment: moon
pipeline:
  name: score
  steps:
    - kind: divide
`)

	var cfg demoConfig
	err := Load("compose-demo", &cfg, WithConfigFile(path))
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
	for _, want := range []string{"environment", "pipeline.steps[0].kind"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestLoadMissingFileUsesEnvOnly(t *testing.T) {
	t.Setenv("SOLO_NAME", "solo")

	var cfg ServiceConfig
	if err := Load("solo", &cfg, WithConfigFile("/nonexistent/config.yml")); err != nil {
		t.Fatalf("expected Load to succeed without a file, got %v", err)
	}
	if cfg.Name != "solo" || cfg.Environment != "development" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unterminated\n")
	var cfg ServiceConfig
	if err := Load("bad", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestLoadSearchesEnvFiles(t *testing.T) {
	t.Setenv("MOCKED_NAME", "mocked")
	fs := &mockFS{files: map[string]bool{".env": true}}

	var cfg ServiceConfig
	if err := Load("mocked", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !slices.Equal(fs.loaded, []string{".env"}) {
		t.Errorf("expected .env to be loaded, got %v", fs.loaded)
	}
}

func TestStructKeys(t *testing.T) {
	keys := structKeys(reflectTypeOf[demoConfig](), "")
	for _, want := range []string{"name", "logging.level", "metrics.enabled", "metrics.endpoint", "pipeline.input"} {
		if !slices.Contains(keys, want) {
			t.Errorf("expected key %q in %v", want, keys)
		}
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := EnvPrefix("compose-demo"); got != "COMPOSE_DEMO" {
		t.Errorf("got %q, want COMPOSE_DEMO", got)
	}
}

func reflectTypeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }
