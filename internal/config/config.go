// Package config loads phase0 runtime settings through viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a phase0 run.
// Values are populated from .phase0.yaml, PHASE0_* env vars, and CLI flags.
type Config struct {
	BoundariesFile      string   `mapstructure:"boundaries_file"`
	Format              string   `mapstructure:"format"`
	CacheSize           int      `mapstructure:"cache_size"`
	Verbose             bool     `mapstructure:"verbose"`
	ComponentExtensions []string `mapstructure:"component_extensions"`
	RouterExtensions    []string `mapstructure:"router_extensions"`
}

// Output formats accepted for field maps.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatEnv  = "env"
)

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("boundaries_file", ".phase0/boundaries.toml")
	viper.SetDefault("format", FormatJSON)
	viper.SetDefault("cache_size", 4096)
	viper.SetDefault("verbose", false)
	viper.SetDefault("component_extensions", []string{".tsx", ".ts"})
	viper.SetDefault("router_extensions", []string{".py"})

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	switch cfg.Format {
	case FormatJSON, FormatTOML, FormatEnv:
	default:
		return Config{}, fmt.Errorf("unknown output format %q (want json, toml or env)", cfg.Format)
	}
	return cfg, nil
}
