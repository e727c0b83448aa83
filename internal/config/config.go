package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration. It is resolved once at startup and
// passed by value; nothing reads the environment after Load returns.
type Config struct {
	API     APIConfig
	UI      UIConfig
	Journal JournalConfig
	Log     LogConfig
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Tenant         string `mapstructure:"tenant"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize   int    `mapstructure:"page_size"`
	Sort       string `mapstructure:"sort"`
	DateFormat string `mapstructure:"date_format"`
}

// JournalConfig holds the local transition journal settings.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds file logging settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix CONTENTDECK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://127.0.0.1:8001")
	v.SetDefault("api.tenant", "default")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("ui.page_size", 20)
	v.SetDefault("ui.sort", "created_at_desc")
	v.SetDefault("ui.date_format", "02 Jan 06 15:04")
	v.SetDefault("journal.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "contentdeck", "journal.db"))
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "contentdeck", "contentdeck.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CONTENTDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "contentdeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CONTENTDECK")
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
