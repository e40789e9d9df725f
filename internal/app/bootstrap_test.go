package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kore/internal/config"
	"kore/internal/drawer"
	"kore/internal/kvstore"
	"kore/internal/selection"
)

func memoryConfig(t *testing.T) *config.KoreConfig {
	t.Helper()
	discover := false
	cfg := config.GetDefaultConfig()
	cfg.Store = config.StoreConfig{Backend: config.StoreBackendMemory}
	cfg.Kube.DiscoverContexts = &discover
	cfg.Clusters = []config.ClusterDefinition{
		{ID: "prod", Context: "prod-admin"},
		{ID: "dev"},
	}
	return &cfg
}

func TestNewApplication_WiresServices(t *testing.T) {
	var logs bytes.Buffer
	cfg := NewConfig(true, "")
	cfg.LogOutput = &logs
	cfg.KoreConfig = memoryConfig(t)

	a, err := NewApplication(cfg)
	require.NoError(t, err)

	s := a.Services()
	require.NotNil(t, s.Selection)
	require.NotNil(t, s.Bookmarks)
	require.NotNil(t, s.Drawer)
	require.NotNil(t, s.Settings)
	assert.Len(t, s.Directory.Clusters(), 2)

	s.Bookmarks.Add("prod")
	assert.True(t, s.Bookmarks.IsBookmarked("prod"))

	s.Selection.SetCluster("dev")
	name, ok := s.Selection.ContextName()
	assert.True(t, ok)
	assert.Equal(t, "dev", name)

	require.NoError(t, a.Close())
	assert.Contains(t, logs.String(), "Opened memory store")
}

func TestNewApplication_FileStorePersists(t *testing.T) {
	stateDir := t.TempDir()
	newApp := func() *Application {
		cfg := NewConfig(false, "")
		cfg.LogOutput = &bytes.Buffer{}
		cfg.KoreConfig = memoryConfig(t)
		cfg.KoreConfig.Store = config.StoreConfig{Backend: config.StoreBackendFile, Dir: stateDir}
		a, err := NewApplication(cfg)
		require.NoError(t, err)
		return a
	}

	first := newApp()
	first.Services().Bookmarks.Add("prod")
	first.Services().Selection.SetNamespace("payments")
	require.NoError(t, first.Close())

	second := newApp()
	defer second.Close()
	assert.Equal(t, []string{"prod"}, second.Services().Bookmarks.BookmarkedClusterIDs())
	assert.Equal(t, selection.State{ActiveNamespace: "payments"}, second.Services().Selection.Snapshot())
}

func TestNewApplication_ConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kore.yaml")
	content := "store:\n  backend: memory\nkube:\n  discoverContexts: false\nclusters:\n  - id: lab\n    context: lab-ctx\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := NewConfig(false, path)
	cfg.LogOutput = &bytes.Buffer{}
	a, err := NewApplication(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, config.StoreBackendMemory, a.Config().KoreConfig.Store.Backend)
	ctx, ok := a.Services().Directory.ResolveClusterContext("lab")
	assert.True(t, ok)
	assert.Equal(t, "lab-ctx", ctx)
}

func TestNewApplication_Errors(t *testing.T) {
	cfg := NewConfig(false, filepath.Join(t.TempDir(), "missing.yaml"))
	cfg.LogOutput = &bytes.Buffer{}
	_, err := NewApplication(cfg)
	assert.Error(t, err)

	cfg = NewConfig(false, "")
	cfg.LogOutput = &bytes.Buffer{}
	cfg.KoreConfig = memoryConfig(t)
	cfg.KoreConfig.Store.Backend = "etcd"
	_, err = NewApplication(cfg)
	assert.Error(t, err)
}

func TestServicesClose_ClosesDrawerTabs(t *testing.T) {
	cfg := NewConfig(false, "")
	cfg.LogOutput = &bytes.Buffer{}
	cfg.KoreConfig = memoryConfig(t)
	a, err := NewApplication(cfg)
	require.NoError(t, err)

	closed := false
	require.NoError(t, a.Services().Drawer.OpenTab(drawer.Tab{
		ID:      "logs",
		Kind:    drawer.KindLogs,
		OnClose: func() error { closed = true; return nil },
	}))

	require.NoError(t, a.Close())
	assert.True(t, closed)
}

func TestRefreshRestoredSelection(t *testing.T) {
	stateDir := t.TempDir()
	seed, err := kvstore.NewFileStore(stateDir)
	require.NoError(t, err)
	require.NoError(t, seed.Write(selection.StorageKey, `{"clusterId":"prod","activeNamespace":"payments"}`))
	require.NoError(t, seed.Close())

	cfg := NewConfig(false, "")
	cfg.LogOutput = &bytes.Buffer{}
	cfg.KoreConfig = memoryConfig(t)
	cfg.KoreConfig.Store = config.StoreConfig{Backend: config.StoreBackendFile, Dir: stateDir}
	cfg.KoreConfig.Clusters = []config.ClusterDefinition{
		{ID: "prod", Context: "prod-admin", Kubeconfig: filepath.Join(stateDir, "no-such-kubeconfig")},
	}
	a, err := NewApplication(cfg)
	require.NoError(t, err)
	defer a.Close()

	sel := a.Services().Selection
	assert.Equal(t, selection.State{ClusterID: "prod", ActiveNamespace: "payments"}, sel.Snapshot())

	a.refreshRestoredSelection()
	sel.Wait()

	// The cluster cannot be reached, so the namespace set is empty and the
	// stored namespace falls back to "all".
	assert.Empty(t, sel.Namespaces())
	assert.False(t, sel.Loading())
	assert.Equal(t, selection.State{ClusterID: "prod", ActiveNamespace: selection.AllNamespaces}, sel.Snapshot())
}

func TestRefreshRestoredSelection_NoCluster(t *testing.T) {
	cfg := NewConfig(false, "")
	cfg.LogOutput = &bytes.Buffer{}
	cfg.KoreConfig = memoryConfig(t)
	a, err := NewApplication(cfg)
	require.NoError(t, err)
	defer a.Close()

	a.refreshRestoredSelection()
	assert.False(t, a.Services().Selection.Loading())
}
