// Package config loads fizzcheck configuration from a YAML file, a .env file
// and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "fizzcheck.yaml"

// Environments.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Counter sources.
const (
	CounterCloudStack = "cloudstack"
	CounterZerops     = "zerops"
)

type Config struct {
	Env     string        `yaml:"env" env:"FIZZCHECK_ENV" env-default:"local" validate:"oneof=local dev prod"`
	API     APIConfig     `yaml:"api"`
	Counter CounterConfig `yaml:"counter"`
	Suite   SuiteConfig   `yaml:"suite"`
}

type APIConfig struct {
	URL       string        `yaml:"url" env:"FIZZCHECK_API_URL" validate:"required"`
	Key       string        `yaml:"apiKey" env:"FIZZCHECK_API_KEY" validate:"required"`
	SecretKey string        `yaml:"secretKey" env:"FIZZCHECK_SECRET_KEY" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" env:"FIZZCHECK_API_TIMEOUT" env-default:"30s" validate:"gt=0"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64 `yaml:"rateLimit" env:"FIZZCHECK_API_RATE_LIMIT" env-default:"10" validate:"gte=0"`
	Burst     int     `yaml:"burst" env:"FIZZCHECK_API_BURST" env-default:"10" validate:"gte=1"`
}

// CounterConfig selects where the guest instance count comes from.
type CounterConfig struct {
	Source string       `yaml:"source" env:"FIZZCHECK_COUNTER" env-default:"cloudstack" validate:"oneof=cloudstack zerops"`
	Zerops ZeropsConfig `yaml:"zerops"`
}

type ZeropsConfig struct {
	Token     string `yaml:"token" env:"FIZZCHECK_ZEROPS_TOKEN"`
	APIHost   string `yaml:"apiHost" env:"FIZZCHECK_ZEROPS_API_HOST" env-default:"api.app-prg1.zerops.io"`
	ProjectID string `yaml:"projectId" env:"FIZZCHECK_ZEROPS_PROJECT_ID"`
}

type SuiteConfig struct {
	// DataPath points to a YAML test data file; empty uses the built-in inputs.
	DataPath string   `yaml:"dataPath" env:"FIZZCHECK_SUITE_DATA"`
	Tags     []string `yaml:"tags" env:"FIZZCHECK_TAGS" env-separator:","`
}

var validate = validator.New()

// Load reads configuration. An empty path reads environment variables only.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolvePath picks the config file: flag value, then FIZZCHECK_CONFIG, then
// DefaultPath when it exists. Returns "" when none applies.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv("FIZZCHECK_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	return ""
}

// Validate checks field rules and cross-field requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	if c.Counter.Source == CounterZerops && c.Counter.Zerops.Token == "" {
		return errors.New("invalid config: counter.zerops.token is required when counter.source is zerops")
	}
	return nil
}

// Description returns the env variable help text, for `fizzcheck help`.
func Description() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
