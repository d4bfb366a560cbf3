package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":5000", cfg.Server.HTTP.Addr)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLM.BaseURL)
	assert.False(t, cfg.HasLLMKey())
	assert.False(t, cfg.HasYouTubeKey())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := applyEnv(cfg, lookupFrom(map[string]string{
		"GROQ_API_KEY":    "gsk-test",
		"YOUTUBE_API_KEY": "yt-test",
		"PORT":            "8080",
		"GROQ_MODEL":      "",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTP.Addr)
	assert.Equal(t, "gsk-test", cfg.LLM.APIKey)
	assert.Equal(t, "yt-test", cfg.YouTube.APIKey)
	assert.Equal(t, DefaultLLMModel, cfg.LLM.Model, "empty values keep the default")
	assert.True(t, cfg.HasLLMKey())
	assert.True(t, cfg.HasYouTubeKey())
}

func TestApplyEnvPort(t *testing.T) {
	cfg := Default()
	require.NoError(t, applyEnv(cfg, lookupFrom(map[string]string{"PORT": "127.0.0.1:9000"})))
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTP.Addr)

	err := applyEnv(Default(), lookupFrom(map[string]string{"PORT": "abc"}))
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  http:
    addr: ":7000"
llm:
  model: "test-model"
youtube:
  languages: ["de", "en"]
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Chdir(dir)
	for _, key := range []string{"PORT", "GROQ_MODEL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.HTTP.Addr)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, []string{"de", "en"}, cfg.YouTube.Languages)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultWatchURL, cfg.YouTube.WatchURL)
}

func TestRequestTimeout(t *testing.T) {
	d, err := HTTP{}.RequestTimeout()
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = HTTP{Timeout: "90s"}.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = HTTP{Timeout: "30"}.RequestTimeout()
	assert.Error(t, err)
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http:\n    timeout: \"30\"\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("PORT", "")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.http.timeout")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
