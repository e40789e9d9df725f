package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	SwitchPane   key.Binding
	Select       key.Binding
	Bookmark     key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	ClearCluster key.Binding
	Refresh      key.Binding
	Details      key.Binding
	ActivityLog  key.Binding
	ToggleDrawer key.Binding
	PrevTab      key.Binding
	NextTab      key.Binding
	CloseTab     key.Binding
	CopyContext  key.Binding
	CycleTheme   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move bookmark up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move bookmark down"),
		),
		ClearCluster: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear selection"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh namespaces"),
		),
		Details: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "cluster details"),
		),
		ActivityLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "activity log"),
		),
		ToggleDrawer: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle drawer"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close tab"),
		),
		CopyContext: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy context"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}

// FullHelp returns bindings for the main help view, one slice per column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane, k.Select, k.ClearCluster, k.Refresh},
		{k.Bookmark, k.MoveUp, k.MoveDown, k.CopyContext},
		{k.Details, k.ActivityLog, k.ToggleDrawer, k.PrevTab, k.NextTab, k.CloseTab},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Bookmark, k.ToggleDrawer, k.Help, k.Quit}
}
