package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thomasrohde/quill/pkg/parser"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"seconds", "2s", 2 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if cfg.Output.Format != "json" || cfg.Output.Pretty {
		t.Errorf("output defaults = %+v", cfg.Output)
	}
	if cfg.RecoveryMode() != parser.RecoveryResync || cfg.Parser.MaxErrors != 0 {
		t.Errorf("parser defaults = %+v", cfg.Parser)
	}
	if cfg.Watch.Debounce.Duration != 200*time.Millisecond {
		t.Errorf("debounce default = %s", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "quill.toml", `
[log]
level = "debug"

[output]
format = "yaml"
pretty = true

[parser]
recovery = "minimal"
max_errors = 5

[watch]
debounce = "1s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Output.Format != "yaml" || !cfg.Output.Pretty {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.RecoveryMode() != parser.RecoveryMinimal || cfg.Parser.MaxErrors != 5 {
		t.Errorf("parser = %+v", cfg.Parser)
	}
	if cfg.Watch.Debounce.Duration != time.Second {
		t.Errorf("debounce = %s", cfg.Watch.Debounce)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "quill.yaml", `
log:
  level: warn
  format: json
parser:
  recovery: resync
watch:
  debounce: 50ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output format default not applied: %q", cfg.Output.Format)
	}
	if cfg.Watch.Debounce.Duration != 50*time.Millisecond {
		t.Errorf("debounce = %s", cfg.Watch.Debounce)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file must fail")
	}
	bad := writeFile(t, "bad.toml", "[log\nlevel = ")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("malformed TOML error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"recovery", func(c *Config) { c.Parser.Recovery = "panic" }, "parser.recovery"},
		{"max errors", func(c *Config) { c.Parser.MaxErrors = -1 }, "parser.max_errors"},
		{"debounce", func(c *Config) { c.Watch.Debounce.Duration = -time.Second }, "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate() = %v, want an error naming %s", err, tt.field)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "custom.toml", "[parser]\nrecovery = \"minimal\"\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvRecovery, "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.RecoveryMode() != parser.RecoveryMinimal {
		t.Errorf("recovery = %q", cfg.Parser.Recovery)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("QUILL_LOG_LEVEL not applied: %q", cfg.Log.Level)
	}
}

func TestLoadFromEnvWithoutFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvRecovery, "minimal")
	t.Setenv(EnvLogLevel, "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("unexpected config file %q", cfg.Path())
	}
	if cfg.RecoveryMode() != parser.RecoveryMinimal {
		t.Errorf("QUILL_RECOVERY not applied: %q", cfg.Parser.Recovery)
	}
}

func TestLoadFromEnvRejectsBadOverride(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvRecovery, "sometimes")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("invalid QUILL_RECOVERY must fail validation")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "explicit.yml", "output:\n  pretty: true\n")
	t.Setenv(EnvRecovery, "")
	t.Setenv(EnvLogLevel, "")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !cfg.Output.Pretty {
		t.Error("output.pretty not loaded")
	}
	if lc := cfg.LoggerConfig("quill"); lc.Name != "quill" || lc.Level != "info" {
		t.Errorf("LoggerConfig = %+v", lc)
	}
}
