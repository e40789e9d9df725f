package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"kore/pkg/logging"
)

// NewProgram creates the Bubble Tea program on the alternate screen.
func NewProgram(opts Options, logChannel <-chan logging.LogEntry) *tea.Program {
	m := NewModel(opts, logChannel)
	return tea.NewProgram(m, tea.WithAltScreen())
}
