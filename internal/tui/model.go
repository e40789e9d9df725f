package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"kore/internal/bookmarks"
	"kore/internal/drawer"
	"kore/internal/kube"
	"kore/internal/observe"
	"kore/internal/selection"
	"kore/internal/settings"
	"kore/pkg/logging"
)

const (
	activityLogTabID = "activity-log"
	statusDuration   = 3 * time.Second
)

// ClusterCatalog lists the clusters shown in the cluster pane.
type ClusterCatalog interface {
	Clusters() []kube.Cluster
}

// Options wires the model to the UI-state components.
type Options struct {
	Catalog   ClusterCatalog
	Selection *selection.Coordinator
	Bookmarks *bookmarks.List
	Drawer    *drawer.Manager
	Settings  *settings.Store
	Hub       *observe.Hub
	Debug     bool
}

type pane int

const (
	paneClusters pane = iota
	paneNamespaces
)

// Model is the Bubble Tea model of the terminal UI.
type Model struct {
	opts Options

	keys     KeyMap
	help     help.Model
	showHelp bool
	styles   Styles

	width  int
	height int

	focus           pane
	clusterCursor   int
	namespaceCursor int
	clusters        []kube.Cluster

	logLines    []string
	logViewport viewport.Model
	logCh       <-chan logging.LogEntry
	sub         *observe.Subscription

	status        string
	statusIsError bool
	statusCancel  chan struct{}

	clipboardWrite func(string) error
}

// NewModel creates the model. logCh may be nil.
func NewModel(opts Options, logCh <-chan logging.LogEntry) *Model {
	m := &Model{
		opts:           opts,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		logViewport:    viewport.New(80, 10),
		logCh:          logCh,
		clipboardWrite: clipboard.WriteAll,
	}
	if opts.Hub != nil {
		m.sub = opts.Hub.Subscribe("")
	}
	m.refreshStyles()
	m.refreshClusters()
	return m
}

// Init starts the log and change listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(listenForLogs(m.logCh), listenForChanges(m.sub))
}

func (m *Model) refreshStyles() {
	m.styles = NewStyles(m.opts.Settings.Get().Theme)
}

// refreshClusters orders bookmarked clusters first, in bookmark order, followed
// by the rest in directory order.
func (m *Model) refreshClusters() {
	all := m.opts.Catalog.Clusters()
	byID := make(map[string]kube.Cluster, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	ordered := make([]kube.Cluster, 0, len(all))
	pinned := make(map[string]bool)
	for _, id := range m.opts.Bookmarks.BookmarkedClusterIDs() {
		c, ok := byID[id]
		if !ok {
			// Bookmarks may outlive the cluster definition.
			c = kube.Cluster{ID: id, Name: id}
		}
		ordered = append(ordered, c)
		pinned[id] = true
	}
	for _, c := range all {
		if !pinned[c.ID] {
			ordered = append(ordered, c)
		}
	}
	m.clusters = ordered
	m.clusterCursor = clamp(m.clusterCursor, len(m.clusters))
	m.namespaceCursor = clamp(m.namespaceCursor, len(m.namespaceItems()))
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// namespaceItems is the namespace pane content: the "all" sentinel followed by
// the namespaces of the selected cluster.
func (m *Model) namespaceItems() []string {
	return append([]string{selection.AllNamespaces}, m.opts.Selection.Namespaces()...)
}

func (m *Model) cursorCluster() (kube.Cluster, bool) {
	if m.clusterCursor < 0 || m.clusterCursor >= len(m.clusters) {
		return kube.Cluster{}, false
	}
	return m.clusters[m.clusterCursor], true
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = msg.Width
		m.logViewport.Height = m.drawerBodyHeight()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case logEntryMsg:
		m.appendLog(msg.Entry)
		return m, listenForLogs(m.logCh)

	case changeMsg:
		switch msg.Change.Topic {
		case observe.TopicSettings:
			m.refreshStyles()
		case observe.TopicBookmarks, observe.TopicSelection:
			m.refreshClusters()
		}
		return m, listenForChanges(m.sub)

	case clearStatusMsg:
		m.status = ""
		m.statusIsError = false
		return m, nil
	}
	return m, nil
}

func (m *Model) appendLog(entry logging.LogEntry) {
	if entry.Level < logging.LevelInfo && !m.opts.Debug {
		return
	}
	m.logLines = append(m.logLines, entry.String())
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(strings.Join(m.logLines, "\n"))
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == paneClusters {
			m.focus = paneNamespaces
		} else {
			m.focus = paneClusters
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		return m.selectUnderCursor()
	case key.Matches(msg, m.keys.Bookmark):
		return m.toggleBookmark()
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveBookmark(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveBookmark(1)
	case key.Matches(msg, m.keys.ClearCluster):
		m.opts.Selection.SetCluster("")
		m.refreshClusters()
	case key.Matches(msg, m.keys.Refresh):
		m.opts.Selection.Refresh()
	case key.Matches(msg, m.keys.Details):
		return m.openDetails()
	case key.Matches(msg, m.keys.ActivityLog):
		return m.openActivityLog()
	case key.Matches(msg, m.keys.ToggleDrawer):
		m.opts.Drawer.Toggle()
		m.logViewport.Height = m.drawerBodyHeight()
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.CloseTab):
		return m.closeActiveTab()
	case key.Matches(msg, m.keys.CopyContext):
		return m.copyContext()
	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()
	default:
		if tab, ok := m.opts.Drawer.ActiveTab(); ok && tab.ID == activityLogTabID && m.opts.Drawer.IsOpen() {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	if m.focus == paneClusters {
		m.clusterCursor = clamp(m.clusterCursor+delta, len(m.clusters))
		return
	}
	m.namespaceCursor = clamp(m.namespaceCursor+delta, len(m.namespaceItems()))
}

func (m *Model) selectUnderCursor() tea.Cmd {
	if m.focus == paneNamespaces {
		items := m.namespaceItems()
		ns := items[clamp(m.namespaceCursor, len(items))]
		m.opts.Selection.SetNamespace(ns)
		return nil
	}
	c, ok := m.cursorCluster()
	if !ok {
		return nil
	}
	m.opts.Selection.SetCluster(c.ID)
	m.namespaceCursor = 0
	return m.setStatus(fmt.Sprintf("Switched to %s", c.Name), false, statusDuration)
}

func (m *Model) toggleBookmark() tea.Cmd {
	c, ok := m.cursorCluster()
	if !ok || m.focus != paneClusters {
		return nil
	}
	bookmarked := m.opts.Bookmarks.Toggle(c.ID)
	m.refreshClusters()
	// Keep the cursor on the cluster that moved.
	if i := slices.IndexFunc(m.clusters, func(x kube.Cluster) bool { return x.ID == c.ID }); i >= 0 {
		m.clusterCursor = i
	}
	if bookmarked {
		return m.setStatus(fmt.Sprintf("Bookmarked %s", c.Name), false, statusDuration)
	}
	return m.setStatus(fmt.Sprintf("Removed bookmark for %s", c.Name), false, statusDuration)
}

func (m *Model) moveBookmark(delta int) tea.Cmd {
	c, ok := m.cursorCluster()
	if !ok || m.focus != paneClusters {
		return nil
	}
	from := slices.Index(m.opts.Bookmarks.BookmarkedClusterIDs(), c.ID)
	if from < 0 {
		return m.setStatus("Only bookmarked clusters can be reordered", true, statusDuration)
	}
	if err := m.opts.Bookmarks.Reorder(from, from+delta); err != nil {
		logging.Debug("TUI", "Bookmark move ignored: %v", err)
		return nil
	}
	m.refreshClusters()
	m.clusterCursor = from + delta
	return nil
}

func (m *Model) openDetails() tea.Cmd {
	c, ok := m.cursorCluster()
	if !ok {
		return nil
	}
	err := m.opts.Drawer.OpenTab(drawer.Tab{
		ID:      "cluster/" + c.ID,
		Title:   c.Name,
		Kind:    drawer.KindCustom,
		Payload: c,
	})
	if err != nil {
		return m.setStatus(err.Error(), true, statusDuration)
	}
	m.logViewport.Height = m.drawerBodyHeight()
	return nil
}

func (m *Model) openActivityLog() tea.Cmd {
	err := m.opts.Drawer.OpenTab(drawer.Tab{
		ID:    activityLogTabID,
		Title: "Activity log",
		Kind:  drawer.KindLogs,
	})
	if err != nil {
		return m.setStatus(err.Error(), true, statusDuration)
	}
	m.logViewport.Height = m.drawerBodyHeight()
	m.logViewport.GotoBottom()
	return nil
}

func (m *Model) cycleTab(delta int) {
	st := m.opts.Drawer.State()
	if len(st.Tabs) == 0 {
		return
	}
	i := slices.IndexFunc(st.Tabs, func(t drawer.Tab) bool { return t.ID == st.ActiveTabID })
	next := (i + delta + len(st.Tabs)) % len(st.Tabs)
	m.opts.Drawer.SetActiveTab(st.Tabs[next].ID)
}

func (m *Model) closeActiveTab() tea.Cmd {
	tab, ok := m.opts.Drawer.ActiveTab()
	if !ok {
		return nil
	}
	if err := m.opts.Drawer.CloseTab(tab.ID); err != nil {
		return m.setStatus(fmt.Sprintf("Could not close %s: %v", tab.Title, err), true, statusDuration)
	}
	m.logViewport.Height = m.drawerBodyHeight()
	return nil
}

func (m *Model) copyContext() tea.Cmd {
	name, ok := m.opts.Selection.ContextName()
	if !ok {
		return m.setStatus("No context for the selected cluster", true, statusDuration)
	}
	if err := m.clipboardWrite(name); err != nil {
		logging.Error("TUI", err, "Failed to copy context name")
		return m.setStatus("Copy failed", true, statusDuration)
	}
	return m.setStatus(fmt.Sprintf("Copied %s", name), false, statusDuration)
}

func (m *Model) cycleTheme() tea.Cmd {
	current := m.opts.Settings.Get().Theme
	next := settings.Themes[(slices.Index(settings.Themes, current)+1)%len(settings.Themes)]
	if err := m.opts.Settings.SetTheme(next); err != nil {
		return m.setStatus(err.Error(), true, statusDuration)
	}
	m.refreshStyles()
	return m.setStatus(fmt.Sprintf("Theme: %s", next), false, statusDuration)
}

// drawerBodyHeight is the height left for tab content when the drawer is open.
func (m *Model) drawerBodyHeight() int {
	h := m.height/3 - 2
	if h < 3 {
		h = 3
	}
	return h
}
