package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-shredder/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	return tmpFile
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8083,
		"model": "gemini-2.0-flash",
		"extended_schema": true,
		"fetch_timeout_seconds": 45
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8083, cfg.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.True(t, cfg.ExtendedSchema)
	assert.Equal(t, 45, cfg.FetchTimeoutSeconds)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero value", Config{}, ""},
		{"valid port", Config{Port: 8083}, ""},
		{"negative port", Config{Port: -1}, "'port'"},
		{"huge port", Config{Port: 70000}, "'port'"},
		{"negative timeout", Config{FetchTimeoutSeconds: -5}, "'fetch_timeout_seconds'"},
		{"missing credentials file", Config{CredentialsFile: "/nonexistent/fire.json"}, "credentials file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultSchema(t *testing.T) {
	assert.Equal(t, types.SchemaBasic, (&Config{}).DefaultSchema())
	assert.Equal(t, types.SchemaExtended, (&Config{ExtendedSchema: true}).DefaultSchema())
}

func TestResolveAPIKey_EnvWins(t *testing.T) {
	cfg := &Config{APIKey: "from-file"}

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "from-file", cfg.ResolveAPIKey())

	t.Setenv("GEMINI_API_KEY", "from-env")
	assert.Equal(t, "from-env", cfg.ResolveAPIKey())
}
