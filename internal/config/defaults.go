package config

import (
	"path/filepath"
	"time"
)

const (
	defaultNamespaceTimeout = 15 * time.Second
	defaultRedisAddr        = "localhost:6379"
	defaultKeyPrefix        = "kore:"
	stateDirName            = "state"
)

// GetDefaultConfig returns the built-in configuration: file-backed state under
// the user config directory and clusters discovered from the default kubeconfig.
func GetDefaultConfig() KoreConfig {
	stateDir := ""
	if dir, err := GetUserConfigDir(); err == nil {
		stateDir = filepath.Join(dir, stateDirName)
	}

	return KoreConfig{
		Store: StoreConfig{
			Backend:   StoreBackendFile,
			Dir:       stateDir,
			RedisAddr: defaultRedisAddr,
			KeyPrefix: defaultKeyPrefix,
		},
		Kube: KubeSettings{
			NamespaceTimeout: defaultNamespaceTimeout,
		},
		Clusters: []ClusterDefinition{},
	}
}
