package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kore/internal/drawer"
	"kore/internal/kube"
	"kore/internal/selection"
)

// View renders the whole screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sections := []string{m.renderHeader(), m.renderPanes()}
	if m.opts.Drawer.IsOpen() {
		sections = append(sections, m.renderDrawer())
	}
	sections = append(sections, m.renderStatus())
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	snapshot := m.opts.Selection.Snapshot()
	cluster := "no cluster"
	if snapshot.ClusterID != "" {
		cluster = snapshot.ClusterID
		if ctx, ok := m.opts.Selection.ContextName(); ok && ctx != snapshot.ClusterID {
			cluster = fmt.Sprintf("%s (%s)", snapshot.ClusterID, ctx)
		}
	}
	line := fmt.Sprintf("%s kore  %s  ns: %s", IconKubernetes, cluster, snapshot.ActiveNamespace)
	if m.opts.Selection.Loading() {
		line += "  " + IconLoading
	}
	return m.styles.Header.Width(m.width).Render(line)
}

func (m *Model) panesHeight() int {
	h := m.height - 3
	if m.opts.Drawer.IsOpen() {
		h -= m.drawerBodyHeight() + 2
	}
	if m.showHelp {
		h -= 6
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) renderPanes() string {
	leftWidth := m.width/2 - 2
	rightWidth := m.width - leftWidth - 4
	height := m.panesHeight()

	left := m.paneStyle(paneClusters).Width(leftWidth).Height(height).Render(m.renderClusterList())
	right := m.paneStyle(paneNamespaces).Width(rightWidth).Height(height).Render(m.renderNamespaceList())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) paneStyle(p pane) lipgloss.Style {
	if m.focus == p {
		return m.styles.PaneFocused
	}
	return m.styles.Pane
}

func (m *Model) renderClusterList() string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render("Clusters"))
	b.WriteString("\n")
	if len(m.clusters) == 0 {
		b.WriteString(m.styles.Muted.Render("No clusters found in the kubeconfig or configuration"))
		return b.String()
	}

	current := m.opts.Selection.ClusterID()
	for i, c := range m.clusters {
		b.WriteString(m.renderClusterLine(i, c, current))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderClusterLine(i int, c kube.Cluster, current string) string {
	marker := " "
	if m.opts.Bookmarks.IsBookmarked(c.ID) {
		marker = m.styles.Bookmark.Render(IconBookmark)
	}
	selected := " "
	if c.ID == current {
		selected = IconSelected
	}

	name := c.Name
	if c.Icon != "" {
		name = c.Icon + " " + name
	}
	style := m.styles.Item
	switch {
	case i == m.clusterCursor && m.focus == paneClusters:
		style = m.styles.ItemCursor
	case c.ID == current:
		style = m.styles.ItemSelected
	}
	return fmt.Sprintf("%s %s %s", marker, selected, style.Render(name))
}

func (m *Model) renderNamespaceList() string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render("Namespaces"))
	b.WriteString("\n")
	if m.opts.Selection.ClusterID() == "" {
		b.WriteString(m.styles.Muted.Render("Select a cluster"))
		return b.String()
	}

	active := m.opts.Selection.ActiveNamespace()
	for i, ns := range m.namespaceItems() {
		label := ns
		if ns == selection.AllNamespaces {
			label = "All namespaces"
		}
		style := m.styles.Item
		switch {
		case i == m.namespaceCursor && m.focus == paneNamespaces:
			style = m.styles.ItemCursor
		case ns == active:
			style = m.styles.ItemSelected
		}
		prefix := "  "
		if ns == active {
			prefix = IconSelected + " "
		}
		b.WriteString(prefix + style.Render(label) + "\n")
	}
	return b.String()
}

// tabTitle truncates a title to maxTabTitleWidth terminal cells.
func tabTitle(title string) string {
	return runewidth.Truncate(title, maxTabTitleWidth, "…")
}

func (m *Model) renderDrawer() string {
	st := m.opts.Drawer.State()

	tabs := make([]string, 0, len(st.Tabs))
	for _, t := range st.Tabs {
		style := m.styles.Tab
		if t.ID == st.ActiveTabID {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(tabTitle(t.Title)))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	if active, ok := m.opts.Drawer.ActiveTab(); ok {
		body = m.renderTabBody(active)
	}
	return m.styles.Drawer.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, strip, body))
}

func (m *Model) renderTabBody(t drawer.Tab) string {
	switch t.Kind {
	case drawer.KindLogs:
		if len(m.logLines) == 0 {
			return m.styles.Muted.Render("No log entries yet")
		}
		return m.logViewport.View()
	case drawer.KindCustom:
		if c, ok := t.Payload.(kube.Cluster); ok {
			return m.renderClusterDetails(c)
		}
	}
	return m.styles.Muted.Render(fmt.Sprintf("Nothing to show for %s", t.Title))
}

func (m *Model) renderClusterDetails(c kube.Cluster) string {
	lines := []string{
		fmt.Sprintf("ID:          %s", c.ID),
		fmt.Sprintf("Name:        %s", c.Name),
		fmt.Sprintf("Context:     %s", c.ContextName),
	}
	if c.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("Kubeconfig:  %s", c.ConfigPath))
	}
	if c.Description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", c.Description))
	}
	if len(c.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("Tags:        %s", strings.Join(c.Tags, ", ")))
	}
	if m.opts.Bookmarks.IsBookmarked(c.ID) {
		lines = append(lines, m.styles.Bookmark.Render(IconBookmark+" bookmarked"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return m.help.ShortHelpView(m.keys.ShortHelp())
	}
	if m.statusIsError {
		return m.styles.StatusError.Render(m.status)
	}
	return m.styles.StatusSuccess.Render(m.status)
}
