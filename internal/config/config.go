package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/briefing/internal/llm"
)

// Environment variables read by Load.
const (
	EnvAPIKey       = "GROQ_API_KEY"
	EnvSearchAPIKey = "TAVILY_API_KEY"
	EnvModel        = "BRIEFING_MODEL"
)

// Search providers.
const (
	ProviderStub   = "stub"
	ProviderTavily = "tavily"
)

// ErrMissingAPIKey is returned by Validate when no generation credential is set.
var ErrMissingAPIKey = fmt.Errorf("config: %s is not set", EnvAPIKey)

// SearchConfig selects and tunes the retrieval backend.
type SearchConfig struct {
	Provider   string `yaml:"provider,omitempty"`
	MaxResults int    `yaml:"maxResults,omitempty"`
	Depth      string `yaml:"depth,omitempty"`
}

// Config holds settings loaded from briefing.yml and the environment.
type Config struct {
	Model               string        `yaml:"model,omitempty"`
	MaxCompletionTokens int           `yaml:"maxCompletionTokens,omitempty"`
	Temperature         float64       `yaml:"temperature,omitempty"`
	BaseURL             string        `yaml:"baseURL,omitempty"`
	Timeout             time.Duration `yaml:"timeout,omitempty"`
	MaxRetries          int           `yaml:"maxRetries,omitempty"`
	MaxConcurrentRuns   int           `yaml:"maxConcurrentRuns,omitempty"`
	Verbose             bool          `yaml:"verbose,omitempty"`
	Search              SearchConfig  `yaml:"search,omitempty"`

	// Credentials come from the environment only.
	APIKey       string `yaml:"-"`
	SearchAPIKey string `yaml:"-"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Model:               llm.DefaultModel,
		MaxCompletionTokens: llm.DefaultMaxTokens,
		BaseURL:             llm.DefaultBaseURL,
		Timeout:             60 * time.Second,
		MaxRetries:          llm.DefaultMaxRetries,
		MaxConcurrentRuns:   2,
		Search: SearchConfig{
			Provider:   ProviderStub,
			MaxResults: 5,
			Depth:      "basic",
		},
	}
}

// Load reads .env and briefing.yml (or briefing.yaml) from dir, then applies
// environment variables. Missing files are not an error. Variables already
// present in the process environment win over .env entries.
func Load(dir string) (*Config, error) {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}

	cfg := Default()
	for _, name := range []string{"briefing.yml", "briefing.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		break
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	cfg.SearchAPIKey = strings.TrimSpace(os.Getenv(EnvSearchAPIKey))
	if m := strings.TrimSpace(os.Getenv(EnvModel)); m != "" {
		cfg.Model = m
	}
	return cfg, nil
}

// Validate reports configuration errors that must stop the program before
// any pipeline work starts.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		return errors.New("config: model must not be empty")
	}
	if c.MaxCompletionTokens <= 0 {
		return fmt.Errorf("config: maxCompletionTokens must be positive, got %d", c.MaxCompletionTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config: temperature must be within [0, 2], got %g", c.Temperature)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config: maxRetries must not be negative, got %d", c.MaxRetries)
	}
	if c.MaxConcurrentRuns <= 0 {
		return fmt.Errorf("config: maxConcurrentRuns must be positive, got %d", c.MaxConcurrentRuns)
	}
	switch c.Search.Provider {
	case ProviderStub:
	case ProviderTavily:
		if c.SearchAPIKey == "" {
			return fmt.Errorf("config: search provider %q requires %s", ProviderTavily, EnvSearchAPIKey)
		}
	default:
		return fmt.Errorf("config: unknown search provider %q", c.Search.Provider)
	}
	return nil
}
