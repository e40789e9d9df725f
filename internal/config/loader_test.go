package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content KoreConfig) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, filename)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tempFilePath, data, 0644))
	return tempFilePath
}

// redirectConfigPaths points user and project config lookups into tempDir.
func redirectConfigPaths(t *testing.T, tempDir string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	originalOsUserHomeDir := osUserHomeDir
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
		osUserHomeDir = originalOsUserHomeDir
	})

	osUserHomeDir = func() (string, error) { return tempDir, nil }
	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, userConfigDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", projectConfigDir, configFileName), nil
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()
	redirectConfigPaths(t, tempDir)

	loaded, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreBackendFile, loaded.Store.Backend)
	assert.Equal(t, filepath.Join(tempDir, userConfigDir, stateDirName), loaded.Store.Dir)
	assert.Equal(t, defaultNamespaceTimeout, loaded.Kube.NamespaceTimeout)
	assert.True(t, loaded.Kube.ShouldDiscoverContexts())
	assert.Empty(t, loaded.Clusters)
}

func TestLoadConfig_UserAndProjectLayers(t *testing.T) {
	tempDir := t.TempDir()
	redirectConfigPaths(t, tempDir)

	discover := false
	createTempConfigFile(t, filepath.Join(tempDir, userConfigDir), configFileName, KoreConfig{
		Store: StoreConfig{Backend: StoreBackendMemory},
		Kube:  KubeSettings{NamespaceTimeout: 3 * time.Second},
		Clusters: []ClusterDefinition{
			{ID: "prod", Context: "prod-admin"},
			{ID: "dev", Context: "dev-admin"},
		},
	})
	createTempConfigFile(t, filepath.Join(tempDir, "project", projectConfigDir), configFileName, KoreConfig{
		Kube: KubeSettings{DiscoverContexts: &discover},
		Clusters: []ClusterDefinition{
			{ID: "dev", Context: "dev-readonly"},
			{ID: "staging", Context: "staging"},
		},
	})

	loaded, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreBackendMemory, loaded.Store.Backend)
	assert.Equal(t, 3*time.Second, loaded.Kube.NamespaceTimeout)
	assert.False(t, loaded.Kube.ShouldDiscoverContexts())
	require.Len(t, loaded.Clusters, 3)
	assert.Equal(t, "prod", loaded.Clusters[0].ID)
	assert.Equal(t, "dev-readonly", loaded.Clusters[1].Context)
	assert.Equal(t, "staging", loaded.Clusters[2].ID)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	redirectConfigPaths(t, tempDir)

	userDir := filepath.Join(tempDir, userConfigDir)
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, configFileName), []byte("store: [unclosed"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	redirectConfigPaths(t, tempDir)

	t.Setenv(EnvStoreBackend, "redis")
	t.Setenv(EnvRedisDB, "4")
	t.Setenv(EnvKubeconfig, "/tmp/kubeconfig")

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreBackendRedis, loaded.Store.Backend)
	assert.Equal(t, 4, loaded.Store.RedisDB)
	assert.Equal(t, "/tmp/kubeconfig", loaded.Kube.Kubeconfig)
}

func TestLoadConfig_InvalidRedisDB(t *testing.T) {
	redirectConfigPaths(t, t.TempDir())
	t.Setenv(EnvRedisDB, "zero")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ProjectDotEnv(t *testing.T) {
	tempDir := t.TempDir()
	redirectConfigPaths(t, tempDir)

	require.NoError(t, os.Unsetenv(EnvRedisAddr))
	t.Cleanup(func() { _ = os.Unsetenv(EnvRedisAddr) })

	projectDir := filepath.Join(tempDir, "project", projectConfigDir)
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, envFileName), []byte(EnvRedisAddr+"=redis.internal:6380\n"), 0644))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6380", loaded.Store.RedisAddr)
}

func TestLoadConfigFromPath(t *testing.T) {
	tempDir := t.TempDir()
	redirectConfigPaths(t, tempDir)

	path := createTempConfigFile(t, tempDir, "custom.yaml", KoreConfig{
		Store: StoreConfig{Dir: "/var/lib/kore"},
	})

	loaded, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/kore", loaded.Store.Dir)
	assert.Equal(t, StoreBackendFile, loaded.Store.Backend)

	_, err = LoadConfigFromPath(filepath.Join(tempDir, "missing.yaml"))
	assert.Error(t, err)
}

func TestNamespaceTimeoutParsesDurationString(t *testing.T) {
	var cfg KoreConfig
	require.NoError(t, yaml.Unmarshal([]byte("kube:\n  namespaceTimeout: 7s\n"), &cfg))
	assert.Equal(t, 7*time.Second, cfg.Kube.NamespaceTimeout)
}
