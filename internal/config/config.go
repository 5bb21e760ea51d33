// Package config resolves where the store keeps its data.
//
// Precedence: command-line flags (bound by the CLI) > RESEPT_* environment
// variables > ~/.resept/config.yaml > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/conris/resept/internal/debug"
)

// Config holds the resolved paths.
type Config struct {
	DBPath       string // SQLite database file
	ShoppingPath string // shopping list blob file
}

// DefaultDir returns the per-user resept directory (~/.resept).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// No home dir (rare; stripped-down containers). Fall back to cwd.
		return ".resept"
	}
	return filepath.Join(home, ".resept")
}

// Load resolves configuration from the default directory.
func Load() (*Config, error) {
	return LoadFrom(DefaultDir())
}

// LoadFrom resolves configuration rooted at dir. Tests use this to avoid
// touching the real home directory.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("RESEPT")
	v.AutomaticEnv()

	v.SetDefault("db", filepath.Join(dir, "resept.db"))
	v.SetDefault("shopping", filepath.Join(dir, "shopping.json"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		debug.Logf("config: no config file in %s, using defaults\n", dir)
	}

	return &Config{
		DBPath:       v.GetString("db"),
		ShoppingPath: v.GetString("shopping"),
	}, nil
}
