package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Engine, cfg.Engine)
	assert.True(t, cfg.Engine.ConcurrentExtractors)
	assert.Equal(t, ProviderNone, cfg.LLM.Provider)
	assert.False(t, cfg.ExternalEnabled())
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Queue.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseConfig_FileThenEnv(t *testing.T) {
	yml := []byte(`
engine:
  min_artist_length: 5
  concurrent_extractors: false
llm:
  provider: openai
  base_url: http://localhost:11434/v1
  timeout: 10s
queue:
  workers: 2
log:
  format: text
`)
	t.Setenv("RIDER_QUEUE_WORKERS", "8")
	t.Setenv("RIDER_ENGINE_MUST_HAVE_LOOKAHEAD", "40")

	cfg, err := ParseConfig(yml)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Engine.MinArtistLength)
	assert.False(t, cfg.Engine.ConcurrentExtractors)
	assert.Equal(t, 40, cfg.Engine.MustHaveLookahead)
	assert.Equal(t, 30, cfg.Engine.MaxCategoryLength, "unset keys keep defaults")
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 8, cfg.Queue.Workers, "env wins over file")
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.ExternalEnabled())
}

func TestParseConfig_ProviderKeyFallback(t *testing.T) {
	t.Setenv("RIDER_LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.NotEmpty(t, cfg.LLM.Model)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"unknown provider", "llm:\n  provider: cohere\n"},
		{"missing key", "llm:\n  provider: gemini\n"},
		{"negative window", "engine:\n  contact_window_before: -1\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"zero workers", "queue:\n  workers: 0\n"},
		{"bad yaml", "engine: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "")
			_, err := ParseConfig([]byte(tt.yml))
			require.Error(t, err)
			assert.Equal(t, CodeConfig, CodeOf(err))
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rider.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  min_item_name_length: 3\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Engine.MinItemNameLength)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
