// Package drawer manages the bottom drawer and the tabs open in it.
//
// Tabs are identified by caller-chosen ids. Opening a tab whose id is already
// present only focuses it, so callers derive ids deterministically from what a
// tab shows (see LogsTabID) when a second click should reuse the first tab.
// A tab may carry an OnClose callback that releases whatever the tab holds
// (a log stream, a port forward); CloseTab runs it before removing the tab.
//
// The drawer is not persisted.
package drawer

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"kore/internal/observe"
	"kore/pkg/logging"
)

const subsystem = "Drawer"

// ErrEmptyTabID is returned by OpenTab for a tab without an id.
var ErrEmptyTabID = errors.New("tab id is required")

// Kind is what a tab hosts.
type Kind string

const (
	KindLogs   Kind = "logs"
	KindEdit   Kind = "edit"
	KindCustom Kind = "custom"
)

// Tab is one drawer tab. Payload is opaque to the drawer.
type Tab struct {
	ID      string
	Title   string
	Kind    Kind
	Payload any
	OnClose func() error
}

// State is a snapshot of the drawer.
type State struct {
	Open        bool
	Tabs        []Tab
	ActiveTabID string
}

// Manager owns the drawer state. An open drawer always has at least one tab
// and an active tab that is one of them.
type Manager struct {
	hub *observe.Hub

	mu          sync.RWMutex
	open        bool
	tabs        []Tab
	activeTabID string
}

// NewManager returns a closed, empty drawer. hub may be nil.
func NewManager(hub *observe.Hub) *Manager {
	return &Manager{hub: hub}
}

// NewTabID returns a fresh unique tab id.
func NewTabID() string {
	return uuid.NewString()
}

// LogsTabID is the id of the logs tab for a pod.
func LogsTabID(clusterID, namespace, pod string) string {
	return fmt.Sprintf("logs/%s/%s/%s", clusterID, namespace, pod)
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.tabs, func(t Tab) bool { return t.ID == id })
}

// OpenTab opens the drawer and focuses tab. When a tab with the same id is
// already open it is focused unchanged and the new tab is ignored.
func (m *Manager) OpenTab(tab Tab) error {
	if tab.ID == "" {
		return ErrEmptyTabID
	}

	m.mu.Lock()
	if m.indexOf(tab.ID) < 0 {
		m.tabs = append(m.tabs, tab)
		logging.Debug(subsystem, "Opened tab %s (%s)", tab.ID, tab.Kind)
	}
	m.activeTabID = tab.ID
	m.open = true
	m.mu.Unlock()

	m.hub.Publish(observe.TopicDrawer, "tabs")
	return nil
}

// CloseTab runs the tab's OnClose callback and removes the tab. A callback
// error is returned and the tab stays open. Closing the active tab activates
// the first remaining tab; closing the last tab closes the drawer. Unknown ids
// are ignored.
func (m *Manager) CloseTab(id string) error {
	m.mu.RLock()
	i := m.indexOf(id)
	var onClose func() error
	if i >= 0 {
		onClose = m.tabs[i].OnClose
	}
	m.mu.RUnlock()

	if i < 0 {
		return nil
	}

	// The callback may block or call back into the manager.
	if onClose != nil {
		if err := onClose(); err != nil {
			logging.Error(subsystem, err, "Close callback of tab %s failed", id)
			return fmt.Errorf("closing tab %s: %w", id, err)
		}
	}

	m.mu.Lock()
	// Re-resolve: the tab list may have changed while the callback ran.
	if i = m.indexOf(id); i < 0 {
		m.mu.Unlock()
		return nil
	}
	m.tabs = slices.Delete(m.tabs, i, i+1)
	switch {
	case len(m.tabs) == 0:
		m.activeTabID = ""
		m.open = false
	case m.activeTabID == id:
		m.activeTabID = m.tabs[0].ID
	}
	m.mu.Unlock()

	logging.Debug(subsystem, "Closed tab %s", id)
	m.hub.Publish(observe.TopicDrawer, "tabs")
	return nil
}

// SetActiveTab focuses the tab with the given id. Unknown ids are ignored.
func (m *Manager) SetActiveTab(id string) {
	m.mu.Lock()
	if m.indexOf(id) < 0 {
		m.mu.Unlock()
		return
	}
	m.activeTabID = id
	m.mu.Unlock()

	m.hub.Publish(observe.TopicDrawer, "activeTabId")
}

// Close hides the drawer and keeps its tabs.
func (m *Manager) Close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()

	m.hub.Publish(observe.TopicDrawer, "open")
}

// Toggle flips the drawer between open and closed. An empty drawer stays
// closed.
func (m *Manager) Toggle() {
	m.mu.Lock()
	if len(m.tabs) == 0 {
		m.open = false
		m.mu.Unlock()
		return
	}
	m.open = !m.open
	m.mu.Unlock()

	m.hub.Publish(observe.TopicDrawer, "open")
}

// IsOpen reports whether the drawer is visible.
func (m *Manager) IsOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.open
}

// ActiveTab returns the focused tab.
func (m *Manager) ActiveTab() (Tab, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(m.activeTabID); i >= 0 {
		return m.tabs[i], true
	}
	return Tab{}, false
}

// Tabs returns the open tabs in opening order.
func (m *Manager) Tabs() []Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.tabs)
}

// State returns a snapshot of the drawer.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{Open: m.open, Tabs: slices.Clone(m.tabs), ActiveTabID: m.activeTabID}
}
