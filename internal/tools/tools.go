package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kore/internal/bookmarks"
	"kore/internal/kube"
	"kore/internal/selection"
	"kore/internal/settings"
	"kore/pkg/logging"
)

// ClusterCatalog lists the clusters the user can select.
type ClusterCatalog interface {
	Clusters() []kube.Cluster
	Cluster(id string) (kube.Cluster, bool)
}

// StateTools implements the MCP tools over the UI-state components.
type StateTools struct {
	catalog   ClusterCatalog
	selection *selection.Coordinator
	bookmarks *bookmarks.List
	settings  *settings.Store
}

// NewStateTools creates the tool set.
func NewStateTools(catalog ClusterCatalog, sel *selection.Coordinator, bm *bookmarks.List, st *settings.Store) *StateTools {
	return &StateTools{catalog: catalog, selection: sel, bookmarks: bm, settings: st}
}

// NewServer returns an MCP server with every tool registered.
func NewServer(version string, st *StateTools) *server.MCPServer {
	s := server.NewMCPServer(
		"kore",
		version,
		server.WithToolCapabilities(true),
	)
	s.AddTools(st.ServerTools()...)
	return s
}

// ServeStdio serves s on in/out until ctx is done or in is closed.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	logging.Info("MCP", "Serving tools on stdio")
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

// ServerTools pairs every tool with its handler.
func (st *StateTools) ServerTools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: mcp.NewTool("cluster_list",
			mcp.WithDescription("List known clusters with their bookmark state"),
		), Handler: st.HandleClusterList},
		{Tool: mcp.NewTool("cluster_select",
			mcp.WithDescription("Select a cluster; resets the namespace to 'all' and refreshes namespaces"),
			mcp.WithString("cluster_id",
				mcp.Required(),
				mcp.Description("Cluster id as shown by cluster_list"),
			),
		), Handler: st.HandleClusterSelect},
		{Tool: mcp.NewTool("cluster_clear",
			mcp.WithDescription("Clear the cluster selection"),
		), Handler: st.HandleClusterClear},
		{Tool: mcp.NewTool("cluster_current",
			mcp.WithDescription("Show the selected cluster, its kubeconfig context and the active namespace"),
		), Handler: st.HandleClusterCurrent},
		{Tool: mcp.NewTool("namespace_list",
			mcp.WithDescription("List namespaces of the selected cluster"),
			mcp.WithBoolean("refresh",
				mcp.Description("Query the cluster before answering"),
			),
		), Handler: st.HandleNamespaceList},
		{Tool: mcp.NewTool("namespace_select",
			mcp.WithDescription("Set the active namespace; 'all' removes the filter"),
			mcp.WithString("namespace",
				mcp.Required(),
				mcp.Description("Namespace name or 'all'"),
			),
		), Handler: st.HandleNamespaceSelect},
		{Tool: mcp.NewTool("bookmark_list",
			mcp.WithDescription("List bookmarked clusters in order"),
		), Handler: st.HandleBookmarkList},
		{Tool: mcp.NewTool("bookmark_toggle",
			mcp.WithDescription("Bookmark a cluster, or remove its bookmark"),
			mcp.WithString("cluster_id",
				mcp.Required(),
				mcp.Description("Cluster id"),
			),
		), Handler: st.HandleBookmarkToggle},
		{Tool: mcp.NewTool("bookmark_reorder",
			mcp.WithDescription("Move a bookmark to another position"),
			mcp.WithNumber("from",
				mcp.Required(),
				mcp.Description("Current position, starting at 0"),
			),
			mcp.WithNumber("to",
				mcp.Required(),
				mcp.Description("New position, starting at 0"),
			),
		), Handler: st.HandleBookmarkReorder},
		{Tool: mcp.NewTool("settings_get",
			mcp.WithDescription("Show display settings"),
		), Handler: st.HandleSettingsGet},
		{Tool: mcp.NewTool("settings_set_theme",
			mcp.WithDescription("Set the application theme"),
			mcp.WithString("theme",
				mcp.Required(),
				mcp.Description("Theme name"),
				mcp.Enum(settings.Themes...),
			),
		), Handler: st.HandleSettingsSetTheme},
	}
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	resultJSON, _ := json.MarshalIndent(v, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(resultJSON)),
		},
	}
}

// intArgument reads a whole number argument. JSON numbers arrive as float64.
func intArgument(req mcp.CallToolRequest, name string) (int, error) {
	raw, ok := req.GetArguments()[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a whole number", name)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number", name)
	}
}

type clusterView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Context     string   `json:"context"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Bookmarked  bool     `json:"bookmarked"`
	Selected    bool     `json:"selected"`
}

// HandleClusterList handles the cluster_list tool call
func (st *StateTools) HandleClusterList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current := st.selection.ClusterID()
	clusters := st.catalog.Clusters()

	views := make([]clusterView, 0, len(clusters))
	for _, c := range clusters {
		views = append(views, clusterView{
			ID:          c.ID,
			Name:        c.Name,
			Context:     c.ContextName,
			Description: c.Description,
			Tags:        c.Tags,
			Bookmarked:  st.bookmarks.IsBookmarked(c.ID),
			Selected:    c.ID == current,
		})
	}

	return jsonResult(map[string]interface{}{
		"clusters": views,
		"total":    len(views),
	}), nil
}

// HandleClusterSelect handles the cluster_select tool call
func (st *StateTools) HandleClusterSelect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clusterID, err := req.RequireString("cluster_id")
	if err != nil || clusterID == "" {
		return mcp.NewToolResultError("cluster_id is required"), nil
	}
	if _, ok := st.catalog.Cluster(clusterID); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown cluster '%s'", clusterID)), nil
	}

	st.selection.SetCluster(clusterID)
	return mcp.NewToolResultText(fmt.Sprintf("Selected cluster '%s'", clusterID)), nil
}

// HandleClusterClear handles the cluster_clear tool call
func (st *StateTools) HandleClusterClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st.selection.SetCluster("")
	return mcp.NewToolResultText("Cluster selection cleared"), nil
}

// HandleClusterCurrent handles the cluster_current tool call
func (st *StateTools) HandleClusterCurrent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snapshot := st.selection.Snapshot()
	contextName, hasContext := st.selection.ContextName()

	result := map[string]interface{}{
		"cluster_id":       nil,
		"context":          nil,
		"active_namespace": snapshot.ActiveNamespace,
		"loading":          st.selection.Loading(),
	}
	if snapshot.ClusterID != "" {
		result["cluster_id"] = snapshot.ClusterID
	}
	if hasContext {
		result["context"] = contextName
	}
	return jsonResult(result), nil
}

// HandleNamespaceList handles the namespace_list tool call
func (st *StateTools) HandleNamespaceList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if st.selection.ClusterID() == "" {
		return mcp.NewToolResultError("No cluster selected"), nil
	}
	if refresh, _ := req.GetArguments()["refresh"].(bool); refresh {
		st.selection.FetchNamespaces(ctx)
	}

	namespaces := st.selection.Namespaces()
	return jsonResult(map[string]interface{}{
		"cluster_id": st.selection.ClusterID(),
		"namespaces": namespaces,
		"active":     st.selection.ActiveNamespace(),
		"total":      len(namespaces),
	}), nil
}

// HandleNamespaceSelect handles the namespace_select tool call
func (st *StateTools) HandleNamespaceSelect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	namespace, err := req.RequireString("namespace")
	if err != nil || namespace == "" {
		return mcp.NewToolResultError("namespace is required"), nil
	}

	st.selection.SetNamespace(namespace)
	return mcp.NewToolResultText(fmt.Sprintf("Active namespace is now '%s'", namespace)), nil
}

// HandleBookmarkList handles the bookmark_list tool call
func (st *StateTools) HandleBookmarkList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := st.bookmarks.Bookmarks()
	return jsonResult(map[string]interface{}{
		"bookmarks": list,
		"total":     len(list),
	}), nil
}

// HandleBookmarkToggle handles the bookmark_toggle tool call
func (st *StateTools) HandleBookmarkToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clusterID, err := req.RequireString("cluster_id")
	if err != nil || clusterID == "" {
		return mcp.NewToolResultError("cluster_id is required"), nil
	}

	if st.bookmarks.Toggle(clusterID) {
		return mcp.NewToolResultText(fmt.Sprintf("Bookmarked '%s'", clusterID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed bookmark for '%s'", clusterID)), nil
}

// HandleBookmarkReorder handles the bookmark_reorder tool call
func (st *StateTools) HandleBookmarkReorder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := intArgument(req, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := intArgument(req, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := st.bookmarks.Reorder(from, to); err != nil {
		if errors.Is(err, bookmarks.ErrIndexOutOfRange) {
			return mcp.NewToolResultError(fmt.Sprintf("Position out of range: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to reorder bookmarks: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"bookmarks": st.bookmarks.BookmarkedClusterIDs(),
	}), nil
}

// HandleSettingsGet handles the settings_get tool call
func (st *StateTools) HandleSettingsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v := st.settings.Get()
	return jsonResult(map[string]interface{}{
		"theme":                v.Theme,
		"code_theme":           v.CodeTheme,
		"effective_code_theme": st.settings.EffectiveCodeTheme(),
		"refresh_interval_ms":  v.RefreshInterval.Milliseconds(),
	}), nil
}

// HandleSettingsSetTheme handles the settings_set_theme tool call
func (st *StateTools) HandleSettingsSetTheme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	theme, err := req.RequireString("theme")
	if err != nil {
		return mcp.NewToolResultError("theme is required"), nil
	}
	if err := st.settings.SetTheme(theme); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Theme set to '%s'", theme)), nil
}
