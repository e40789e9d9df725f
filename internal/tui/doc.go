// Package tui provides the terminal user interface for kore.
//
// The interface is a single Bubble Tea model with two panes (clusters and
// namespaces) and the bottom drawer. All state lives in the UI-state
// components; the model only keeps cursors, the activity log and layout. It
// re-renders when a component publishes a change on the observe hub, so edits
// made from another surface (the MCP server, for instance) show up live.
//
// # Keyboard Navigation
//
//   - ↑/↓ or k/j: move the cursor
//   - tab: switch between the cluster and namespace panes
//   - enter: select the cluster or namespace under the cursor
//   - b: bookmark or un-bookmark the cluster under the cursor
//   - K/J: move a bookmarked cluster up or down
//   - c: clear the cluster selection
//   - r: refresh namespaces
//   - i: open a details tab for the cluster under the cursor
//   - L: open the activity log tab
//   - d: show or hide the drawer
//   - [ and ]: previous and next drawer tab
//   - x: close the active drawer tab
//   - y: copy the kubeconfig context of the selected cluster
//   - t: cycle the theme
//   - ?: toggle help
//   - q/ctrl+c: quit
//
// # Message Flow
//
//  1. Log entries arrive on the channel returned by logging.InitForTUI
//  2. Component changes arrive on an observe.Subscription
//  3. Both are turned into messages by commands that re-arm after each delivery
package tui
