package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kore/internal/bookmarks"
	"kore/internal/config"
	"kore/internal/kube"
	"kore/internal/settings"
)

// writeTestConfig writes a config with two clusters, a file store in a temp
// directory and kubeconfig discovery turned off.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, env := range []string{config.EnvStoreBackend, config.EnvStoreDir, config.EnvRedisAddr, config.EnvRedisDB, config.EnvKubeconfig} {
		t.Setenv(env, "")
	}

	missingKubeconfig := filepath.Join(dir, "no-such-kubeconfig")
	content := fmt.Sprintf(`store:
  backend: file
  dir: %s
kube:
  discoverContexts: false
  namespaceTimeout: 2s
clusters:
  - id: prod
    name: Production
    context: prod-admin
    kubeconfig: %s
    tags: [prod, eu]
  - id: dev
    context: dev-admin
    kubeconfig: %s
`, filepath.Join(dir, "state"), missingKubeconfig, missingKubeconfig)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runKore executes the root command with the given arguments against cfgPath.
func runKore(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	outputFormat = string(OutputFormatTable)
	configPath = ""
	debug = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--config", cfgPath))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestClusterCommands(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runKore(t, cfgPath, "cluster", "ls", "-o", "json")
	require.NoError(t, err)
	var rows []clusterRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "prod", rows[0].ID)
	assert.Equal(t, "prod-admin", rows[0].Context)
	assert.Equal(t, []string{"prod", "eu"}, rows[0].Tags)
	assert.Equal(t, "dev", rows[1].Name)
	assert.False(t, rows[0].Selected)

	out, err = runKore(t, cfgPath, "cluster", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "No cluster selected")

	out, err = runKore(t, cfgPath, "cluster", "use", "prod")
	require.NoError(t, err)
	assert.Contains(t, out, "Switched to cluster prod (context prod-admin)")

	out, err = runKore(t, cfgPath, "cluster", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "cluster:   prod")
	assert.Contains(t, out, "context:   prod-admin")
	assert.Contains(t, out, "namespace: all")

	out, err = runKore(t, cfgPath, "cluster", "ls", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.True(t, rows[0].Selected)
	assert.False(t, rows[1].Selected)

	_, err = runKore(t, cfgPath, "cluster", "clear")
	require.NoError(t, err)
	out, err = runKore(t, cfgPath, "cluster", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "No cluster selected")
}

func TestClusterUseUnknown(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runKore(t, cfgPath, "cluster", "use", "staging")
	require.Error(t, err)
	assert.ErrorIs(t, err, kube.ErrClusterNotFound)
}

func TestClusterListTable(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runKore(t, cfgPath, "cluster", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Production")
	assert.Contains(t, out, "dev-admin")
	assert.Contains(t, out, "prod,eu")
}

func TestNamespaceCommands(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runKore(t, cfgPath, "ns", "use", "kube-system")
	assert.ErrorIs(t, err, errNoClusterSelected)

	_, err = runKore(t, cfgPath, "ns", "ls")
	assert.ErrorIs(t, err, errNoClusterSelected)

	_, err = runKore(t, cfgPath, "cluster", "use", "prod")
	require.NoError(t, err)

	out, err := runKore(t, cfgPath, "namespace", "use", "kube-system")
	require.NoError(t, err)
	assert.Contains(t, out, "Active namespace is now kube-system")

	out, err = runKore(t, cfgPath, "cluster", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "namespace: kube-system")
}

func TestNamespaceListUnreachableCluster(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runKore(t, cfgPath, "cluster", "use", "dev")
	require.NoError(t, err)

	out, err := runKore(t, cfgPath, "ns", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No namespaces found for dev")
}

func TestBookmarkCommands(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runKore(t, cfgPath, "bookmark", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No bookmarks yet")

	for _, id := range []string{"prod", "dev", "staging"} {
		out, err = runKore(t, cfgPath, "bookmark", "add", id)
		require.NoError(t, err)
		assert.Contains(t, out, "Bookmarked "+id)
	}

	out, err = runKore(t, cfgPath, "bookmark", "move", "0", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "[dev staging prod]")

	out, err = runKore(t, cfgPath, "bm", "toggle", "staging")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed bookmark for staging")

	out, err = runKore(t, cfgPath, "bookmark", "ls", "-o", "json")
	require.NoError(t, err)
	var list []bookmarks.Bookmark
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "dev", list[0].ClusterID)
	assert.Equal(t, 0, list[0].Order)
	assert.Equal(t, "prod", list[1].ClusterID)
	assert.Equal(t, 1, list[1].Order)

	_, err = runKore(t, cfgPath, "bookmark", "rm", "dev")
	require.NoError(t, err)
	out, err = runKore(t, cfgPath, "cluster", "ls", "-o", "json")
	require.NoError(t, err)
	var rows []clusterRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.True(t, rows[0].Bookmarked)
	assert.False(t, rows[1].Bookmarked)
}

func TestBookmarkMoveErrors(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runKore(t, cfgPath, "bookmark", "add", "prod")
	require.NoError(t, err)

	_, err = runKore(t, cfgPath, "bookmark", "move", "0", "3")
	assert.ErrorIs(t, err, bookmarks.ErrIndexOutOfRange)

	_, err = runKore(t, cfgPath, "bookmark", "move", "first", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid position "first"`)
}

func TestSettingsCommands(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runKore(t, cfgPath, "settings", "show", "-o", "json")
	require.NoError(t, err)
	var view settingsView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "kore", view.Theme)
	assert.Equal(t, settings.SameAsApp, view.CodeTheme)
	assert.Equal(t, "kore", view.EffectiveCodeTheme)
	assert.Equal(t, "5s", view.RefreshInterval)

	_, err = runKore(t, cfgPath, "settings", "theme", "dracula")
	require.NoError(t, err)
	_, err = runKore(t, cfgPath, "settings", "refresh", "2s")
	require.NoError(t, err)

	out, err = runKore(t, cfgPath, "settings", "show", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "theme: dracula")
	assert.Contains(t, out, "effectiveCodeTheme: dracula")
	assert.Contains(t, out, "refreshInterval: 2s")

	_, err = runKore(t, cfgPath, "settings", "code-theme", "alucard")
	require.NoError(t, err)
	out, err = runKore(t, cfgPath, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "alucard")
}

func TestSettingsValidation(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runKore(t, cfgPath, "settings", "theme", "solarized")
	assert.ErrorIs(t, err, settings.ErrUnknownTheme)

	_, err = runKore(t, cfgPath, "settings", "refresh", "10ms")
	assert.ErrorIs(t, err, settings.ErrInvalidRefreshInterval)

	_, err = runKore(t, cfgPath, "settings", "refresh", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestUnknownOutputFormat(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runKore(t, cfgPath, "cluster", "ls", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestVersionCommand(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()
	SetVersion("0.4.2")

	out, err := runKore(t, writeTestConfig(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "kore version 0.4.2\n", out)
}
