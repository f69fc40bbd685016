package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Identity IdentityConfig
	Session  SessionConfig
	Presence PresenceConfig
}

// ServerConfig points at the API server.
type ServerConfig struct {
	URL string
}

// IdentityConfig holds the sign-in token source. Token wins over TokenEnv.
type IdentityConfig struct {
	Token    string
	TokenEnv string `mapstructure:"token_env"`
}

// SessionConfig holds local persistence paths.
type SessionConfig struct {
	StorePath   string `mapstructure:"store_path"`
	JournalPath string `mapstructure:"journal_path"`
}

// PresenceConfig controls the optional users-online poller.
type PresenceConfig struct {
	Enabled         bool
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// Load reads configuration from file and env. Env var overrides use prefix LOUNGE_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "lounge")

	// default values
	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("identity.token", "")
	v.SetDefault("identity.token_env", "LOUNGE_ID_TOKEN")
	v.SetDefault("session.store_path", filepath.Join(dataDir, "session.json"))
	v.SetDefault("session.journal_path", filepath.Join(dataDir, "signals.db"))
	v.SetDefault("presence.enabled", false)
	v.SetDefault("presence.interval_seconds", 15)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LOUNGE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "lounge"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LOUNGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ResolveToken returns the id token from config or the configured env var.
func (c Config) ResolveToken() string {
	if t := strings.TrimSpace(c.Identity.Token); t != "" {
		return t
	}
	if c.Identity.TokenEnv != "" {
		return strings.TrimSpace(os.Getenv(c.Identity.TokenEnv))
	}
	return ""
}
