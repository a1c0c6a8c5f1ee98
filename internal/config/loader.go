package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads configuration from the user's config file over defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Return defaults if no home dir
	}

	path := filepath.Join(home, ".pmapp", "config.yaml")
	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		// Keep defaults; a broken config file must not brick the CLI
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(DataDir(), "cache.db")
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// ConfigPath returns the path to the user's config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pmapp", "config.yaml")
}

// DataDir returns the directory holding session files and the cache
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pmapp")
}
