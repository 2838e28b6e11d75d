package setpath

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/monolite/setpath/transform"
)

// ErrConfigValidation is returned when the configuration file has an invalid value.
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "setpath.yaml"

// Config represents the setpath configuration
type Config struct {
	Callee        string            `yaml:"callee"`
	ImportSources []string          `yaml:"import_sources"`
	Validation    ValidationConfig  `yaml:"validation"`
	Input         InputConfig       `yaml:"input"`
	Output        OutputConfig      `yaml:"output"`
	Performance   PerformanceConfig `yaml:"performance"`
}

// ValidationConfig represents accessor validation settings
type ValidationConfig struct {
	Strict *bool `yaml:"strict,omitempty"`
}

// IsStrict reports whether invalid accessors fail the run (default: true)
func (v ValidationConfig) IsStrict() bool {
	return v.Strict == nil || *v.Strict
}

// InputConfig represents which files are picked up from directories
type InputConfig struct {
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
	Markdown   *bool    `yaml:"markdown,omitempty"`
}

// MarkdownEnabled reports whether fenced code blocks in .md files are rewritten (default: true)
func (i InputConfig) MarkdownEnabled() bool {
	return i.Markdown == nil || *i.Markdown
}

// OutputConfig represents output settings
type OutputConfig struct {
	Quote  string `yaml:"quote"`
	Mode   string `yaml:"mode"`
	Report string `yaml:"report"`
}

// PerformanceConfig represents performance settings
type PerformanceConfig struct {
	Workers int `yaml:"workers"`
}

// Output modes
const (
	ModePreserve = "preserve"
	ModeReprint  = "reprint"
)

// Report formats
const (
	ReportText       = "text"
	ReportJSON       = "json"
	ReportCheckstyle = "checkstyle"
)

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseConfig(data)
}

// parseConfig decodes, validates and completes a configuration document
func parseConfig(data []byte) (*Config, error) {
	var config Config

	// Strict mode rejects unknown fields
	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	switch config.Output.Quote {
	case "", "single", "double":
	default:
		return fmt.Errorf("%w: invalid output.quote '%s': must be one of single, double", ErrConfigValidation, config.Output.Quote)
	}

	switch config.Output.Mode {
	case "", ModePreserve, ModeReprint:
	default:
		return fmt.Errorf("%w: invalid output.mode '%s': must be one of preserve, reprint", ErrConfigValidation, config.Output.Mode)
	}

	switch config.Output.Report {
	case "", ReportText, ReportJSON, ReportCheckstyle:
	default:
		return fmt.Errorf("%w: invalid output.report '%s': must be one of text, json, checkstyle", ErrConfigValidation, config.Output.Report)
	}

	if config.Performance.Workers < 0 {
		return fmt.Errorf("%w: performance.workers must not be negative, got %d", ErrConfigValidation, config.Performance.Workers)
	}

	for _, ext := range config.Input.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("%w: input.extensions: '%s' must start with a dot", ErrConfigValidation, ext)
		}
	}

	for _, source := range config.ImportSources {
		if source == "" {
			return fmt.Errorf("%w: import_sources: empty module name", ErrConfigValidation)
		}
	}

	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func getDefaultConfig() *Config {
	return &Config{
		Callee: transform.DefaultOptions.Callee,
		Validation: ValidationConfig{
			Strict: boolPtr(true),
		},
		Input: InputConfig{
			Extensions: []string{".js", ".mjs", ".cjs"},
			Exclude:    []string{"node_modules", ".git"},
			Markdown:   boolPtr(true),
		},
		Output: OutputConfig{
			Quote:  "single",
			Mode:   ModePreserve,
			Report: ReportText,
		},
	}
}

func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Callee == "" {
		config.Callee = defaults.Callee
	}

	if config.Validation.Strict == nil {
		config.Validation.Strict = defaults.Validation.Strict
	}

	if len(config.Input.Extensions) == 0 {
		config.Input.Extensions = defaults.Input.Extensions
	}

	if config.Input.Exclude == nil {
		config.Input.Exclude = defaults.Input.Exclude
	}

	if config.Input.Markdown == nil {
		config.Input.Markdown = defaults.Input.Markdown
	}

	if config.Output.Quote == "" {
		config.Output.Quote = defaults.Output.Quote
	}

	if config.Output.Mode == "" {
		config.Output.Mode = defaults.Output.Mode
	}

	if config.Output.Report == "" {
		config.Output.Report = defaults.Output.Report
	}
}

// loadEnvFiles loads .env.local and then .env. godotenv never overrides a
// variable that is already set, so .env.local wins over .env.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if !fileExists(name) {
			continue
		}

		err := godotenv.Load(name)
		if err != nil {
			return fmt.Errorf("failed to load %s file: %w", name, err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands ${VAR} and $VAR references
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Callee = expandEnvVars(config.Callee)

	for i, source := range config.ImportSources {
		config.ImportSources[i] = expandEnvVars(source)
	}

	for i, pattern := range config.Input.Exclude {
		config.Input.Exclude[i] = expandEnvVars(pattern)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// TransformOptions converts the configuration into options of the rewrite pass
func (c *Config) TransformOptions() transform.Options {
	return transform.Options{
		Callee:        c.Callee,
		ImportSources: slices.Clone(c.ImportSources),
		Strict:        c.Validation.IsStrict(),
	}
}

// QuoteChar returns the quote used for synthesized string literals
func (c *Config) QuoteChar() byte {
	if c.Output.Quote == "double" {
		return '"'
	}
	return '\''
}

// WorkerCount returns the number of files processed concurrently
func (c *Config) WorkerCount() int {
	if c.Performance.Workers > 0 {
		return c.Performance.Workers
	}
	return runtime.NumCPU()
}

// Options returns the pipeline options for one file
func (c *Config) Options(filename string) Options {
	return Options{
		Filename:  filename,
		Transform: c.TransformOptions(),
		Quote:     c.QuoteChar(),
		Reprint:   c.Output.Mode == ModeReprint,
	}
}

// HasExtension reports whether path carries one of the configured extensions
func (c *Config) HasExtension(ext string) bool {
	return slices.Contains(c.Input.Extensions, ext)
}
