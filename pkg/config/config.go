// Package config loads quill settings from TOML or YAML files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/quill/pkg/logging"
	"github.com/thomasrohde/quill/pkg/parser"
)

// Environment variables read by LoadFromEnv.
const (
	EnvConfig   = "QUILL_CONFIG"
	EnvLogLevel = "QUILL_LOG_LEVEL"
	EnvRecovery = "QUILL_RECOVERY"
)

// Config holds the complete tool configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`

	path string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig holds settings for command output.
type OutputConfig struct {
	// Format is the default dump format of the parse command: json or yaml.
	// The tokens command prints one token per line unless --format is given.
	Format string `toml:"format" yaml:"format"`
	// Pretty selects styled diagnostics in the check command.
	Pretty bool `toml:"pretty" yaml:"pretty"`
}

// ParserConfig holds parser settings.
type ParserConfig struct {
	Recovery  string `toml:"recovery" yaml:"recovery"`
	MaxErrors int    `toml:"max_errors" yaml:"max_errors"`
}

// WatchConfig holds settings of the watch command.
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration file at path. The format follows the file
// extension: .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch detectFormat(path) {
	case "yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.path = path
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads the file named by QUILL_CONFIG, or else the first
// existing default location. Without any file the defaults are used.
// Environment overrides are applied last and the result is validated.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads path when it is set and LoadFromEnv otherwise. This is
// what the CLI does with its --config flag.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv()
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths lists the files LoadFromEnv tries, in order.
func DefaultPaths() []string {
	paths := []string{"./quill.toml", "./quill.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "quill", "config.toml"))
	}
	return paths
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	if _, err := parser.ParseRecoveryMode(c.Parser.Recovery); err != nil {
		errs = append(errs, fmt.Errorf("parser.recovery: %w", err))
	}
	if c.Parser.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("parser.max_errors: must not be negative, got %d", c.Parser.MaxErrors))
	}
	if c.Watch.Debounce.Duration <= 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must be positive, got %s", c.Watch.Debounce))
	}
	return errors.Join(errs...)
}

// RecoveryMode returns the configured parser recovery mode.
func (c *Config) RecoveryMode() parser.RecoveryMode {
	mode, _ := parser.ParseRecoveryMode(c.Parser.Recovery)
	return mode
}

// LoggerConfig returns the logger settings for a logger named name.
func (c *Config) LoggerConfig(name string) logging.LoggerConfig {
	lc := logging.DefaultLoggerConfig(name)
	if c.Log.Level != "" {
		lc.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	return lc
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = logging.FormatText
	}
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Parser.Recovery == "" {
		c.Parser.Recovery = parser.RecoveryResync.String()
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvRecovery); v != "" {
		c.Parser.Recovery = v
	}
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}
