// Package config loads server configuration from a TOML file with
// environment variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Storage  Storage  `toml:"storage"`
	AI       AI       `toml:"ai"`
	Identity Identity `toml:"identity"`
	Log      Log      `toml:"log"`
	MCP      MCP      `toml:"mcp"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string `toml:"addr"`
	WebhookSecret   string `toml:"webhook_secret"`
	KeepaliveSecret string `toml:"keepalive_secret"`
}

// Storage configures the SQLite data directory.
type Storage struct {
	// DataDir holds the database file. Empty means ~/.anchor/data.
	DataDir string `toml:"data_dir"`
}

// AI configures the OpenAI-compatible provider. An empty APIKey runs
// the server without semantic search or the assistant.
type AI struct {
	APIKey              string `toml:"api_key"`
	BaseURL             string `toml:"base_url"`
	ChatModel           string `toml:"chat_model"`
	EmbeddingModel      string `toml:"embedding_model"`
	EmbeddingDimensions int    `toml:"embedding_dimensions"`
}

// Identity configures the external identity provider.
type Identity struct {
	BaseURL string `toml:"base_url"`
}

// Log configures logging output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCP configures the MCP driving adapter, which serves a single
// configured user.
type MCP struct {
	UserID string `toml:"user_id"`
}

// DefaultPath returns the default config file location,
// ~/.anchor/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".anchor", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields a zero config so the server can run
// entirely from environment variables.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine; fall through to env overrides.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays ANCHOR_* environment variables. Secrets in the
// environment win over the file.
func (c *Config) applyEnv() {
	setFromEnv(&c.Server.Addr, "ANCHOR_ADDR")
	setFromEnv(&c.Server.WebhookSecret, "ANCHOR_WEBHOOK_SECRET")
	setFromEnv(&c.Server.KeepaliveSecret, "ANCHOR_KEEPALIVE_SECRET")
	setFromEnv(&c.Storage.DataDir, "ANCHOR_DATA_DIR")
	setFromEnv(&c.AI.APIKey, "ANCHOR_AI_API_KEY")
	setFromEnv(&c.AI.BaseURL, "ANCHOR_AI_BASE_URL")
	setFromEnv(&c.Identity.BaseURL, "ANCHOR_IDENTITY_BASE_URL")
	setFromEnv(&c.Log.Level, "ANCHOR_LOG_LEVEL")
	setFromEnv(&c.Log.Format, "ANCHOR_LOG_FORMAT")
	setFromEnv(&c.MCP.UserID, "ANCHOR_MCP_USER_ID")
}

func setFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
