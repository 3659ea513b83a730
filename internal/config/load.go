package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Bot          BotConfig          `json:"bot"`
	ContentGuard ContentGuardConfig `json:"content_guard"`
	Logging      LoggingConfig      `json:"logging"`
	Database     DatabaseConfig     `json:"database"`
	KeepAlive    KeepAliveConfig    `json:"keep_alive"`
}

type KeepAliveConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

type BotConfig struct {
	Token   string `json:"token"`
	OwnerID string `json:"owner_id"`
}

type ContentGuardConfig struct {
	Enabled   bool     `json:"enabled"`
	SafeRoles []string `json:"safe_roles"`
	SafeIDs   []string `json:"safe_ids"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	GlobalConfig = &cfg
	return &cfg, nil
}

// LoadOrDefault falls back to defaults (plus env overrides) when the config
// file is absent or unreadable.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnvOverrides(cfg)
		GlobalConfig = cfg
	}
	return cfg
}

func DefaultConfig() *Config {
	return &Config{
		ContentGuard: ContentGuardConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			Path:  "guardian.log",
		},
		Database: DatabaseConfig{
			Path: "guardian.db",
		},
		KeepAlive: KeepAliveConfig{
			Enabled: false,
			Addr:    ":8080",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if owner := os.Getenv("OWNER_ID"); owner != "" {
		cfg.Bot.OwnerID = owner
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
}

// Validate rejects configurations that cannot start a guard. The token and
// owner id have no workable defaults.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("missing bot token (set bot.token or DISCORD_TOKEN)")
	}
	if c.Bot.OwnerID == "" {
		return fmt.Errorf("missing owner id (set bot.owner_id or OWNER_ID)")
	}
	return nil
}

func Get() *Config {
	if GlobalConfig == nil {
		return DefaultConfig()
	}
	return GlobalConfig
}
