package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping-agent/catalog"
)

var envKeys = []string{
	"GEMINI_API_KEY", "MODEL_BASE_URL", "MODEL_NAME", "CATALOG_URL",
	"CATALOG_TIMEOUT", "AGENT_TIMEOUT", "LOG_LEVEL", "CONSOLE_WIDTH",
	"TELEGRAM_BOT_TOKEN",
}

// isolate runs the test in an empty directory with every config variable unset.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.GeminiAPIKey)
	assert.Equal(t, DefaultModelBaseURL, cfg.ModelBaseURL)
	assert.Equal(t, DefaultModelName, cfg.ModelName)
	assert.Equal(t, catalog.DefaultURL, cfg.CatalogURL)
	assert.Equal(t, catalog.DefaultTimeout, cfg.CatalogTimeout)
	assert.Equal(t, 120*time.Second, cfg.AgentTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.ConsoleWidth)

	assert.EqualError(t, cfg.Validate(), "GEMINI_API_KEY is not set. Please check your .env file.")
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "key-from-env")
	t.Setenv("CATALOG_URL", "http://localhost:9999/api/products")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("CONSOLE_WIDTH", "0")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "key-from-env", cfg.GeminiAPIKey)
	assert.Equal(t, "http://localhost:9999/api/products", cfg.CatalogURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 0, cfg.ConsoleWidth)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := isolate(t)
	dotenv := "GEMINI_API_KEY=key-from-file\nMODEL_NAME=gemini-test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("MODEL_NAME")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key-from-file", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-test", cfg.ModelName)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"CATALOG_TIMEOUT": "soon",
		"AGENT_TIMEOUT":   "10",
		"CONSOLE_WIDTH":   "wide",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestValidateRejectsNonPositiveTimeouts(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "k", CatalogTimeout: -time.Second, AgentTimeout: time.Second}
	assert.ErrorContains(t, cfg.Validate(), "CATALOG_TIMEOUT")

	cfg = &Config{GeminiAPIKey: "k", CatalogTimeout: time.Second}
	assert.ErrorContains(t, cfg.Validate(), "AGENT_TIMEOUT")
}
