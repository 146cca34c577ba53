package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/briefing/internal/llm"
)

// clearEnv unsets the variables Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIKey, EnvSearchAPIKey, EnvModel} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, llm.DefaultModel, cfg.Model)
	assert.Equal(t, llm.DefaultMaxTokens, cfg.MaxCompletionTokens)
	assert.Equal(t, llm.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxConcurrentRuns)
	assert.Equal(t, ProviderStub, cfg.Search.Provider)
}

func TestLoad_NoFiles(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "briefing.yml", `
model: llama-3.3-70b-versatile
maxCompletionTokens: 512
temperature: 0.4
timeout: 30s
maxConcurrentRuns: 4
verbose: true
search:
  provider: tavily
  maxResults: 3
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Model)
	assert.Equal(t, 512, cfg.MaxCompletionTokens)
	assert.InDelta(t, 0.4, cfg.Temperature, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.MaxConcurrentRuns)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ProviderTavily, cfg.Search.Provider)
	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, "basic", cfg.Search.Depth, "unset keys keep defaults")
	assert.Equal(t, llm.DefaultMaxRetries, cfg.MaxRetries)
}

func TestLoad_YAMLAlternateExtension(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "briefing.yaml", "model: other-model\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "other-model", cfg.Model)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "briefing.yml", "model: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "briefing.yml", "model: from-file\n")
	t.Setenv(EnvAPIKey, " gsk-env ")
	t.Setenv(EnvSearchAPIKey, "tvly-env")
	t.Setenv(EnvModel, "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "gsk-env", cfg.APIKey)
	assert.Equal(t, "tvly-env", cfg.SearchAPIKey)
	assert.Equal(t, "from-env", cfg.Model)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "GROQ_API_KEY=gsk-dotenv\nTAVILY_API_KEY=tvly-dotenv\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "gsk-dotenv", cfg.APIKey)
	assert.Equal(t, "tvly-dotenv", cfg.SearchAPIKey)
}

func TestLoad_ProcessEnvWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "GROQ_API_KEY=gsk-dotenv\n")
	t.Setenv(EnvAPIKey, "gsk-process")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "gsk-process", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.APIKey = "gsk-test"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults with key", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: EnvAPIKey},
		{name: "empty model", mutate: func(c *Config) { c.Model = "" }, wantErr: "model"},
		{name: "zero tokens", mutate: func(c *Config) { c.MaxCompletionTokens = 0 }, wantErr: "maxCompletionTokens"},
		{name: "temperature too high", mutate: func(c *Config) { c.Temperature = 2.5 }, wantErr: "temperature"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, wantErr: "maxRetries"},
		{name: "zero concurrency", mutate: func(c *Config) { c.MaxConcurrentRuns = 0 }, wantErr: "maxConcurrentRuns"},
		{name: "tavily without key", mutate: func(c *Config) { c.Search.Provider = ProviderTavily }, wantErr: EnvSearchAPIKey},
		{name: "tavily with key", mutate: func(c *Config) {
			c.Search.Provider = ProviderTavily
			c.SearchAPIKey = "tvly-test"
		}},
		{name: "unknown provider", mutate: func(c *Config) { c.Search.Provider = "bing" }, wantErr: "unknown search provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_MissingKeySentinel(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}
