// Package config provides configuration loading and validation for the
// shredding service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/rfp-shredder/internal/types"
)

// Config represents service configuration loadable from a JSON file.
// All fields are optional; missing values use defaults or come from the
// environment at the composition root.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Extraction
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key (GEMINI_API_KEY wins)
	Model          string `json:"model,omitempty"`           // Gemini model name
	ExtendedSchema bool   `json:"extended_schema,omitempty"` // Default to the extended output contract

	// Storage
	CredentialsFile     string `json:"credentials_file,omitempty"`      // GCS service-account JSON path
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds,omitempty"` // Web fetch timeout
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.CredentialsFile)
		}
	}
	return nil
}

// DefaultSchema returns the schema version batches use when the request
// does not override it.
func (c *Config) DefaultSchema() types.SchemaVersion {
	if c.ExtendedSchema {
		return types.SchemaExtended
	}
	return types.SchemaBasic
}

// ResolveAPIKey prefers the environment over the config file so deployments
// never have to write secrets to disk.
func (c *Config) ResolveAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}
