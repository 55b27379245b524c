// Package config provides configuration loading and validation for the
// recommendation service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config is the full service configuration. Values come from an optional
// JSON file, overridden by environment variables, overridden by CLI flags.
type Config struct {
	// DataDir holds the catalog CSV files.
	DataDir string `json:"data_dir,omitempty"`

	// StoreBackend selects the persistence layer: sqlite or postgres.
	StoreBackend string `json:"store_backend,omitempty" validate:"omitempty,oneof=sqlite postgres"`
	// StorePath is the SQLite database file (sqlite backend).
	StorePath string `json:"store_path,omitempty"`
	// DatabaseURL is the PostgreSQL connection URL (postgres backend).
	DatabaseURL string `json:"database_url,omitempty"`

	// EmbedderBackend selects the embedding model: gemini or hashing.
	EmbedderBackend string `json:"embedder_backend,omitempty" validate:"omitempty,oneof=gemini hashing"`
	// APIKey authenticates against the Gemini API (gemini backend).
	APIKey string `json:"api_key,omitempty"`
	// EmbedDimension is the hashing embedder width (hashing backend).
	EmbedDimension int `json:"embed_dimension,omitempty" validate:"omitempty,min=8,max=4096"`

	// WeightsPath points at an optional persona weight override file.
	WeightsPath string `json:"weights_path,omitempty"`
	// DefaultPersona is used when a request carries no persona.
	DefaultPersona string `json:"default_persona,omitempty"`
	// TopK is the default result count.
	TopK int `json:"top_k,omitempty" validate:"omitempty,min=1,max=100"`

	// ListenAddr is the HTTP bind address for serve mode.
	ListenAddr string `json:"listen_addr,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:         "data",
		StoreBackend:    "sqlite",
		StorePath:       "data/store.db",
		EmbedderBackend: "hashing",
		DefaultPersona:  "fresh graduate",
		TopK:            10,
		ListenAddr:      ":8000",
		LogLevel:        "info",
	}
}

// Load reads configuration from an optional JSON file and the environment,
// layered over the defaults. An empty path skips the file layer; a named but
// missing file is an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from the environment.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&c.DataDir, "JOBREC_DATA_DIR")
	setString(&c.StoreBackend, "JOBREC_STORE_BACKEND")
	setString(&c.StorePath, "JOBREC_STORE_PATH")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.EmbedderBackend, "JOBREC_EMBEDDER")
	setString(&c.APIKey, "GEMINI_API_KEY")
	setInt(&c.EmbedDimension, "JOBREC_EMBED_DIMENSION")
	setString(&c.WeightsPath, "JOBREC_WEIGHTS_PATH")
	setString(&c.DefaultPersona, "JOBREC_DEFAULT_PERSONA")
	setInt(&c.TopK, "JOBREC_TOP_K")
	setString(&c.ListenAddr, "JOBREC_LISTEN_ADDR")
	setString(&c.LogLevel, "JOBREC_LOG_LEVEL")
}

var validate = validator.New()

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.StoreBackend == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("config error: postgres backend requires database_url")
	}
	if c.StoreBackend == "sqlite" && c.StorePath == "" {
		return fmt.Errorf("config error: sqlite backend requires store_path")
	}
	if c.EmbedderBackend == "gemini" && c.APIKey == "" {
		return fmt.Errorf("config error: gemini embedder requires api_key")
	}
	return nil
}
