// Package config loads the propchain.yaml project file.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"propchain/internal/chain"
)

// DefaultFile is the file name looked up when no --config flag is given.
const DefaultFile = "propchain.yaml"

// Config is the project configuration.
type Config struct {
	// Patterns are the package patterns scanned for call sites.
	Patterns []string `yaml:"patterns"`
	// Exclude lists doublestar patterns of files ("pkgPath/file.go")
	// whose call sites are ignored.
	Exclude []string `yaml:"exclude,omitempty"`
	// OutputDir overrides where generated files are written.
	// Empty means next to each package.
	OutputDir string `yaml:"output_dir,omitempty"`
	// Operations restricts generation to the named operations
	// (WhenChanged, WhenChanging, Bind). Empty means all of them.
	Operations []string `yaml:"operations,omitempty"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level,omitempty"`
	// Strict turns any error diagnostic into a failed run.
	Strict bool `yaml:"strict,omitempty"`
	// Comments controls explanatory comments in generated code.
	Comments *bool `yaml:"comments,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOrDefault behaves like LoadFile but returns Default when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadFile(path)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"./..."}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}

	if cfg.Comments == nil {
		on := true
		cfg.Comments = &on
	}
}

// Validate checks operation names, exclude patterns and the log level.
func (c *Config) Validate() error {
	for _, name := range c.Operations {
		if _, ok := chain.ParseOperation(name); !ok {
			return fmt.Errorf("unknown operation %q", name)
		}
	}

	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}

	return lvl
}

// Enabled reports whether op should be generated.
func (c *Config) Enabled(op chain.Operation) bool {
	return len(c.Operations) == 0 || slices.Contains(c.Operations, op.String())
}

// GenerateComments reports whether generated code carries comments.
func (c *Config) GenerateComments() bool {
	return c.Comments == nil || *c.Comments
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
