package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/kore"
	projectConfigDir = ".kore"
	configFileName   = "config.yaml"
	envFileName      = ".env"
)

// Environment variables consulted after the YAML layers.
const (
	EnvStoreBackend = "KORE_STORE_BACKEND"
	EnvStoreDir     = "KORE_STORE_DIR"
	EnvRedisAddr    = "KORE_REDIS_ADDR"
	EnvRedisDB      = "KORE_REDIS_DB"
	EnvKubeconfig   = "KORE_KUBECONFIG"
)

// LoadConfig loads the kore configuration by layering default, user, and project
// settings, then applying KORE_* environment overrides. A project .env file is
// loaded first; it never overrides variables already set in the environment.
func LoadConfig() (KoreConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return KoreConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return KoreConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
		if err := loadDotEnv(filepath.Join(filepath.Dir(projectConfigPath), envFileName)); err != nil {
			return KoreConfig{}, err
		}
	}

	return applyEnvOverrides(config)
}

// LoadConfigFromPath loads defaults overlaid with a single configuration file.
func LoadConfigFromPath(path string) (KoreConfig, error) {
	config := GetDefaultConfig()
	fileConfig, err := loadConfigFromFile(path)
	if err != nil {
		return KoreConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return applyEnvOverrides(mergeConfigs(config, fileConfig))
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a KoreConfig from a YAML file.
func loadConfigFromFile(filePath string) (KoreConfig, error) {
	var config KoreConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return KoreConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return KoreConfig{}, err
	}
	return config, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(config KoreConfig) (KoreConfig, error) {
	if v := os.Getenv(EnvStoreBackend); v != "" {
		config.Store.Backend = StoreBackend(v)
	}
	if v := os.Getenv(EnvStoreDir); v != "" {
		config.Store.Dir = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		config.Store.RedisAddr = v
	}
	if v := os.Getenv(EnvRedisDB); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return KoreConfig{}, fmt.Errorf("invalid %s %q: %w", EnvRedisDB, v, err)
		}
		config.Store.RedisDB = db
	}
	if v := os.Getenv(EnvKubeconfig); v != "" {
		config.Kube.Kubeconfig = v
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay KoreConfig) KoreConfig {
	merged := base

	if overlay.Store.Backend != "" {
		merged.Store.Backend = overlay.Store.Backend
	}
	if overlay.Store.Dir != "" {
		merged.Store.Dir = overlay.Store.Dir
	}
	if overlay.Store.RedisAddr != "" {
		merged.Store.RedisAddr = overlay.Store.RedisAddr
	}
	if overlay.Store.RedisDB != 0 {
		merged.Store.RedisDB = overlay.Store.RedisDB
	}
	if overlay.Store.KeyPrefix != "" {
		merged.Store.KeyPrefix = overlay.Store.KeyPrefix
	}

	if overlay.Kube.Kubeconfig != "" {
		merged.Kube.Kubeconfig = overlay.Kube.Kubeconfig
	}
	if overlay.Kube.DiscoverContexts != nil {
		merged.Kube.DiscoverContexts = overlay.Kube.DiscoverContexts
	}
	if overlay.Kube.NamespaceTimeout != 0 {
		merged.Kube.NamespaceTimeout = overlay.Kube.NamespaceTimeout
	}

	// Clusters merge by ID, keeping first-seen order; overlay replaces same-ID entries.
	index := make(map[string]int, len(merged.Clusters))
	clusters := make([]ClusterDefinition, 0, len(base.Clusters)+len(overlay.Clusters))
	for _, c := range base.Clusters {
		index[c.ID] = len(clusters)
		clusters = append(clusters, c)
	}
	for _, c := range overlay.Clusters {
		if i, ok := index[c.ID]; ok {
			clusters[i] = c
			continue
		}
		index[c.ID] = len(clusters)
		clusters = append(clusters, c)
	}
	merged.Clusters = clusters

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
