// Package tools exposes kore's UI state to MCP clients.
//
// An assistant connected over stdio sees the same selection, bookmarks and
// settings as the terminal UI, since both drive the same components and the
// same persisted store.
//
// Tool Categories:
//
//   - Clusters: cluster_list, cluster_select, cluster_clear, cluster_current
//   - Namespaces: namespace_list, namespace_select
//   - Bookmarks: bookmark_list, bookmark_toggle, bookmark_reorder
//   - Settings: settings_get, settings_set_theme
//
// Handlers report user errors as error results (IsError) rather than Go
// errors, and return structured JSON where there is data to show.
package tools
