package app

import (
	"fmt"
	"os"

	"kore/internal/config"
	"kore/pkg/logging"
)

// Application is the main application structure that bootstraps and runs kore
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	output := cfg.LogOutput
	if output == nil {
		output = os.Stderr
	}

	// Initialize logging for CLI output (will be replaced for TUI mode)
	logging.InitForCLI(appLogLevel, output)

	if cfg.KoreConfig == nil {
		koreCfg, err := loadConfig(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load kore configuration")
			return nil, err
		}
		cfg.KoreConfig = &koreCfg
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

func loadConfig(path string) (config.KoreConfig, error) {
	if path != "" {
		cfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			return config.KoreConfig{}, fmt.Errorf("failed to load kore configuration from path %s: %w", path, err)
		}
		logging.Debug("Bootstrap", "Loaded configuration from custom path: %s", path)
		return cfg, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return config.KoreConfig{}, fmt.Errorf("failed to load kore configuration: %w", err)
	}
	logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	return cfg, nil
}

// Services returns the initialized components.
func (a *Application) Services() *Services {
	return a.services
}

// Config returns the resolved configuration.
func (a *Application) Config() *Config {
	return a.config
}

// Close shuts the application down.
func (a *Application) Close() error {
	return a.services.Close()
}
