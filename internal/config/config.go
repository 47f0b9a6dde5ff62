// Package config resolves runtime configuration for mdformat from the
// environment. Values that belong to the persisted plugin settings (API key,
// endpoint, model) are not here; see services.SettingsService.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mdformat/internal/database"
)

const (
	// DefaultMaxTokens is the completion ceiling sent as max_tokens. Long
	// documents are silently truncated by the provider when it is too low.
	DefaultMaxTokens = 16384
	// DefaultTimeout bounds a single formatting request.
	DefaultTimeout = 240 * time.Second

	DefaultReferer  = "http://localhost/mdformat"
	DefaultAppTitle = "mdformat"

	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// Config contains process-level settings.
type Config struct {
	// DBPath is the SQLite file that backs the plugin data store.
	DBPath string
	// SettingsBackend selects where settings are persisted: "sqlite" or "keyring".
	SettingsBackend string
	// MaxTokens is the max_tokens value sent with every request.
	MaxTokens int
	// Timeout bounds one request; zero leaves it to the transport.
	Timeout time.Duration
	// Referer and AppTitle are sent as HTTP-Referer and X-Title.
	Referer  string
	AppTitle string
}

// Default returns the configuration used when no environment overrides are set.
func Default() Config {
	return Config{
		DBPath:          database.GetDefaultDBPath(),
		SettingsBackend: BackendSQLite,
		MaxTokens:       DefaultMaxTokens,
		Timeout:         DefaultTimeout,
		Referer:         DefaultReferer,
		AppTitle:        DefaultAppTitle,
	}
}

// FromEnv overlays MDFORMAT_* environment variables on Default.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(os.Getenv("MDFORMAT_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("MDFORMAT_SETTINGS_BACKEND")); v != "" {
		cfg.SettingsBackend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("MDFORMAT_MAX_TOKENS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("MDFORMAT_MAX_TOKENS: %w", err)
		}
		cfg.MaxTokens = n
	}
	if v := strings.TrimSpace(os.Getenv("MDFORMAT_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("MDFORMAT_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("MDFORMAT_HTTP_REFERER")); v != "" {
		cfg.Referer = v
	}
	if v := strings.TrimSpace(os.Getenv("MDFORMAT_APP_TITLE")); v != "" {
		cfg.AppTitle = v
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that would otherwise fail deep inside a request.
func (c Config) Validate() error {
	switch c.SettingsBackend {
	case BackendSQLite, BackendKeyring:
	default:
		return fmt.Errorf("settings backend must be %q or %q, got %q", BackendSQLite, BackendKeyring, c.SettingsBackend)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
