package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	IconBookmark   = "★"
	IconSelected   = "●"
	IconKubernetes = "☸"
	IconLoading    = "⏳"

	maxTabTitleWidth = 24
	maxLogLines      = 500
)

// palette holds the colors of one theme.
type palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
}

var palettes = map[string]palette{
	"kore": {
		Primary: "#7571F9", Accent: "#10B981", Text: "#F9FAFB", Muted: "#6B7280",
		Border: "#404040", Error: "#EF4444", Success: "#10B981",
	},
	"kore-light": {
		Primary: "#5A56E0", Accent: "#059669", Text: "#111827", Muted: "#9CA3AF",
		Border: "#E5E7EB", Error: "#DC2626", Success: "#059669",
	},
	"rusty": {
		Primary: "#F97316", Accent: "#FACC15", Text: "#FAFAF9", Muted: "#78716C",
		Border: "#44403C", Error: "#EF4444", Success: "#84CC16",
	},
	"rusty-light": {
		Primary: "#C2410C", Accent: "#A16207", Text: "#1C1917", Muted: "#A8A29E",
		Border: "#E7E5E4", Error: "#B91C1C", Success: "#4D7C0F",
	},
	"dracula": {
		Primary: "#BD93F9", Accent: "#FF79C6", Text: "#F8F8F2", Muted: "#6272A4",
		Border: "#44475A", Error: "#FF5555", Success: "#50FA7B",
	},
	"alucard": {
		Primary: "#644AC9", Accent: "#A3144D", Text: "#1F1F1F", Muted: "#635D97",
		Border: "#CFCFDE", Error: "#CB3A2A", Success: "#14710A",
	},
}

// Styles are the lipgloss styles derived from the active theme.
type Styles struct {
	Header        lipgloss.Style
	Pane          lipgloss.Style
	PaneFocused   lipgloss.Style
	PaneTitle     lipgloss.Style
	Item          lipgloss.Style
	ItemCursor    lipgloss.Style
	ItemSelected  lipgloss.Style
	Bookmark      lipgloss.Style
	Muted         lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	Drawer        lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles builds the styles of a theme, falling back to "kore".
func NewStyles(theme string) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["kore"]
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),
		Pane:         pane,
		PaneFocused:  pane.BorderForeground(p.Primary),
		PaneTitle:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Item:         lipgloss.NewStyle().Foreground(p.Text),
		ItemCursor:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		ItemSelected: lipgloss.NewStyle().Foreground(p.Accent),
		Bookmark:     lipgloss.NewStyle().Foreground(p.Accent),
		Muted:        lipgloss.NewStyle().Foreground(p.Muted),
		Tab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Border).
			Padding(0, 1),
		Drawer: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(p.Primary),
		StatusInfo:    lipgloss.NewStyle().Foreground(p.Muted),
		StatusError:   lipgloss.NewStyle().Foreground(p.Error),
		StatusSuccess: lipgloss.NewStyle().Foreground(p.Success),
	}
}
