package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds everything the agent needs: model endpoint, Spider data
// locations and loop tuning. YAML values may reference environment
// variables with ${VAR} syntax; a missing file falls back to environment
// variables and defaults so the CLI works without any config at all.
type Config struct {
	Endpoint   string `yaml:"endpoint" validate:"required,url"`
	APIKey     string `yaml:"api_key" validate:"required"`
	APIVersion string `yaml:"api_version,omitempty"`
	Deployment string `yaml:"deployment" validate:"required"`

	SpiderPath    string `yaml:"spider_path" validate:"required"`
	BenchmarkFile string `yaml:"benchmark_file" validate:"required"`

	MaxIterations int     `yaml:"max_iterations" validate:"gte=1,lte=50"`
	Temperature   float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	TopP          float64 `yaml:"top_p" validate:"gte=0,lte=1"`
	MaxTokens     int     `yaml:"max_tokens,omitempty" validate:"gte=0"`

	GuardEnforce bool     `yaml:"guard_enforce"`
	ModelTimeout Duration `yaml:"model_timeout"`
	QueryTimeout Duration `yaml:"query_timeout"`
}

// Duration parses YAML strings like "30s" or "2m" into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in configuration, with environment variables
// applied on top.
func Default() *Config {
	cfg := &Config{
		Deployment:    "gpt-4o",
		APIVersion:    "2025-01-01-preview",
		SpiderPath:    "spider_data/database",
		BenchmarkFile: "spider_data/dev.json",
		MaxIterations: 10,
		Temperature:   0.3,
		TopP:          1.0,
		ModelTimeout:  Duration(2 * time.Minute),
		QueryTimeout:  Duration(30 * time.Second),
	}
	cfg.applyEnv()
	return cfg
}

// Load reads the YAML config at path. Environment variables referenced in
// the file are expanded before parsing, then applied again on top so the
// environment always wins. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read configs file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Endpoint, "AZURE_OPENAI_ENDPOINT")
	setString(&c.APIKey, "AZURE_OPENAI_API_KEY")
	setString(&c.Deployment, "AZURE_OPENAI_DEPLOYMENT")
	setString(&c.APIVersion, "AZURE_OPENAI_API_VERSION")
	setString(&c.SpiderPath, "SPIDER_DB_PATH")
	setString(&c.BenchmarkFile, "SPIDER_BENCHMARK_FILE")

	if v := os.Getenv("MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxIterations = n
		}
	}
	if v := os.Getenv("TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the configuration before any client is built, so bad
// settings fail at startup instead of mid-benchmark.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			field := errs[0]
			return fmt.Errorf("invalid config: field %s failed %q validation", field.Field(), field.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
