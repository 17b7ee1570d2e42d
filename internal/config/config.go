package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/devtools"
)

const (
	// YAMLFileName is the preferred configuration file name.
	YAMLFileName = "widgetdom.yaml"

	// JSONFileName is the alternative configuration file name.
	JSONFileName = "widgetdom.json"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "widgetdom"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "widgetdom"

	// DefaultDevtoolsAddr is the default devtools listen address.
	DefaultDevtoolsAddr = devtools.DefaultAddr

	// DefaultHistory is the default number of retained devtools records.
	DefaultHistory = devtools.DefaultHistory
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config represents the complete widgetdom configuration.
type Config struct {
	// Log configures the CLI logger.
	Log LogConfig `json:"log" yaml:"log"`

	// DOM configures documents built by the CLI.
	DOM DOMConfig `json:"dom" yaml:"dom"`

	// Metrics configures the Prometheus observer.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Tracing configures the OpenTelemetry observer.
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`

	// Devtools configures the inspector server.
	Devtools DevtoolsConfig `json:"devtools" yaml:"devtools"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// SlogLevel returns Level as a slog.Level, or slog.LevelInfo when it
// does not parse.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate validates the logging configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In(FormatText, FormatJSON)),
	)
}

// DOMConfig contains document settings.
type DOMConfig struct {
	// WarnNoChildren reports children added to widgets that reject them.
	WarnNoChildren bool `json:"warnNoChildren,omitempty" yaml:"warnNoChildren,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled attaches the metrics observer.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// Validate validates the metrics configuration.
func (c *MetricsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Namespace, validation.Required, validation.Match(metricName)),
	)
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled attaches the tracing observer.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// TracerName names the tracer.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// Validate validates the tracing configuration.
func (c *TracingConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TracerName, validation.When(c.Enabled, validation.Required)),
	)
}

// DevtoolsConfig contains inspector settings.
type DevtoolsConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// History is the number of mutation records kept.
	History int `json:"history,omitempty" yaml:"history,omitempty"`
}

// Validate validates the devtools configuration.
func (c *DevtoolsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.History, validation.Required, validation.Min(1), validation.Max(100000)),
	)
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from dir. widgetdom.yaml is preferred over
// widgetdom.json. A directory with neither returns a W030 error.
func Load(dir string) (*Config, error) {
	path, ok := find(dir)
	if !ok {
		return nil, errors.New("W030").
			WithDetail("No " + YAMLFileName + " or " + JSONFileName + " found in " + dir)
	}
	return LoadFile(path)
}

// LoadOrDefault is like Load but returns defaults when dir holds no
// configuration file.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from path. Files ending in .yaml or .yml
// are parsed as YAML after environment expansion; anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("W030").WithDetail(path).Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.New("W030").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("W030").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryCLI, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension
// names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("W030").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W030").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks every section and returns a W031 error describing the
// first invalid one.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    validation.Validatable
	}{
		{"log", &c.Log},
		{"metrics", &c.Metrics},
		{"tracing", &c.Tracing},
		{"devtools", &c.Devtools},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return errors.New("W031").WithDetail(s.name + ": " + err.Error()).Wrap(err)
		}
	}
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Devtools.Addr == "" {
		c.Devtools.Addr = DefaultDevtoolsAddr
	}
	if c.Devtools.History == 0 {
		c.Devtools.History = DefaultHistory
	}
}

// Exists checks if a configuration file exists in dir.
func Exists(dir string) bool {
	_, ok := find(dir)
	return ok
}

func find(dir string) (string, bool) {
	for _, name := range []string{YAMLFileName, JSONFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
