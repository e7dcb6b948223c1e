package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ThemeConfig holds theme preset selection and per-color overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// BackgroundConfig holds the initial widget background.
type BackgroundConfig struct {
	Color string `mapstructure:"color"`
}

// Config holds the application configuration.
type Config struct {
	View       string           `mapstructure:"view"`
	Locale     string           `mapstructure:"locale"`
	Notes      string           `mapstructure:"notes"`
	LogFile    string           `mapstructure:"log_file"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Background BackgroundConfig `mapstructure:"background"`
}

// DefaultConfigDir returns the default configuration directory (~/.dialcal/).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dialcal")
	}
	return filepath.Join(home, ".dialcal")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("view", "weekly")
	v.SetDefault("locale", "en_US")
	v.SetDefault("notes", "memory")
	v.SetDefault("log_file", "")
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.secondary", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
	v.SetDefault("theme.background", "")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("background.color", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "dialcal"))
		}
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DIALCAL_VIEW, DIALCAL_THEME_PRESET, etc.
	v.SetEnvPrefix("DIALCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
