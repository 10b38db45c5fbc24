package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(EnvLLMAPIKey, "")
	t.Setenv(EnvTavilyAPIKey, "")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "google/gemini-2.0-flash-001", cfg.LLM.Model)
	assert.Equal(t, "advanced", cfg.Search.Tavily.SearchDepth)
	assert.Equal(t, 5, cfg.Search.Tavily.MaxResults)
	assert.Equal(t, 3, cfg.Arxiv.MaxResults)
	assert.Equal(t, 70, cfg.Arxiv.MaxQueryLen)
	assert.Equal(t, 10*time.Second, cfg.Arxiv.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Search.Tavily.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Search.EnrichTimeout)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "config.yaml", `
llm:
  model: "openai/gpt-4o-mini"
  api_key: "from-file"
search:
  provider: "searxng"
  searxng:
    base_url: "http://localhost:8080"
arxiv:
  timeout: 5s
log:
  level: debug
`)
	t.Setenv(EnvLLMAPIKey, "from-env")
	t.Setenv(EnvTavilyAPIKey, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "openai/gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "searxng", cfg.Search.Provider)
	assert.Equal(t, "http://localhost:8080", cfg.Search.SearXNG.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Arxiv.Timeout)
	// untouched sections keep their defaults
	assert.Equal(t, 3, cfg.Arxiv.MaxResults)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "OPENROUTER_API_KEY=dotenv-llm\nTAVILY_API_KEY=dotenv-tavily\n")
	t.Setenv(EnvLLMAPIKey, "")
	t.Setenv(EnvTavilyAPIKey, "")
	// godotenv never overrides variables that are already set, so unset them
	require.NoError(t, os.Unsetenv(EnvLLMAPIKey))
	require.NoError(t, os.Unsetenv(EnvTavilyAPIKey))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-llm", cfg.LLM.APIKey)
	assert.Equal(t, "dotenv-tavily", cfg.Search.Tavily.APIKey)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "llm: [unterminated")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		missing string
	}{
		{
			name:    "missing llm key",
			mutate:  func(c *Config) { c.Search.Tavily.APIKey = "t" },
			missing: EnvLLMAPIKey,
		},
		{
			name:    "missing tavily key",
			mutate:  func(c *Config) { c.LLM.APIKey = "k" },
			missing: EnvTavilyAPIKey,
		},
		{
			name: "searxng does not need tavily key",
			mutate: func(c *Config) {
				c.LLM.APIKey = "k"
				c.Search.Provider = "searxng"
			},
		},
		{
			name: "all keys present",
			mutate: func(c *Config) {
				c.LLM.APIKey = "k"
				c.Search.Tavily.APIKey = "t"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingCredential))
			var mce *MissingCredentialError
			require.True(t, errors.As(err, &mce))
			assert.Equal(t, tt.missing, mce.Name)
		})
	}
}
