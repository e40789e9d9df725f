package config

import (
	"time"
)

// KoreConfig is the top-level configuration structure for kore.
type KoreConfig struct {
	Store    StoreConfig         `yaml:"store"`
	Kube     KubeSettings        `yaml:"kube"`
	Clusters []ClusterDefinition `yaml:"clusters,omitempty"`
}

// StoreBackend selects the persistent key-value backend for UI state.
type StoreBackend string

const (
	StoreBackendFile   StoreBackend = "file"
	StoreBackendMemory StoreBackend = "memory"
	StoreBackendRedis  StoreBackend = "redis"
)

// StoreConfig configures where UI state (selection, bookmarks, settings) is persisted.
type StoreConfig struct {
	Backend   StoreBackend `yaml:"backend,omitempty"`   // "file" (default), "memory" or "redis"
	Dir       string       `yaml:"dir,omitempty"`       // Directory for the file backend
	RedisAddr string       `yaml:"redisAddr,omitempty"` // host:port for the redis backend
	RedisDB   int          `yaml:"redisDB,omitempty"`
	KeyPrefix string       `yaml:"keyPrefix,omitempty"` // Prepended to every key by the redis backend
}

// KubeSettings configures the cluster directory.
type KubeSettings struct {
	Kubeconfig       string        `yaml:"kubeconfig,omitempty"`       // Default kubeconfig for clusters without their own
	DiscoverContexts *bool         `yaml:"discoverContexts,omitempty"` // Register every kubeconfig context as a cluster
	NamespaceTimeout time.Duration `yaml:"namespaceTimeout,omitempty"` // Upper bound for a namespace listing
}

// ShouldDiscoverContexts reports whether kubeconfig contexts are registered as clusters.
func (k KubeSettings) ShouldDiscoverContexts() bool {
	return k.DiscoverContexts == nil || *k.DiscoverContexts
}

// ClusterDefinition registers a cluster with the directory.
type ClusterDefinition struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name,omitempty"`
	Context     string   `yaml:"context"`              // kubeconfig context name
	Kubeconfig  string   `yaml:"kubeconfig,omitempty"` // Overrides kube.kubeconfig for this cluster
	Icon        string   `yaml:"icon,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}
