package app

import (
	"io"

	"kore/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// ConfigPath loads a single configuration file instead of the layered lookup.
	ConfigPath string

	// LogOutput receives CLI-mode logs. Defaults to os.Stderr.
	LogOutput io.Writer

	// KoreConfig is filled in by NewApplication unless preset.
	KoreConfig *config.KoreConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
