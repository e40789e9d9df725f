package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kore/internal/observe"
	"kore/pkg/logging"
)

// logEntryMsg carries one log entry from the logging channel.
type logEntryMsg struct {
	Entry logging.LogEntry
}

// changeMsg reports that a UI-state component changed.
type changeMsg struct {
	Change observe.Change
}

// clearStatusMsg clears the status line.
type clearStatusMsg struct{}

// listenForLogs waits for the next log entry. It returns nil once the channel
// is closed, which stops the listener.
func listenForLogs(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return logEntryMsg{Entry: entry}
	}
}

// listenForChanges waits for the next change on sub.
func listenForChanges(sub *observe.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-sub.Channel
		if !ok {
			return nil
		}
		return changeMsg{Change: change}
	}
}

// setStatus shows message in the status line and clears it after clearAfter
// unless a newer message replaced it.
func (m *Model) setStatus(message string, isError bool, clearAfter time.Duration) tea.Cmd {
	m.status = message
	m.statusIsError = isError

	if m.statusCancel != nil {
		close(m.statusCancel)
	}
	m.statusCancel = make(chan struct{})
	captured := m.statusCancel

	return tea.Tick(clearAfter, func(time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return clearStatusMsg{}
		}
	})
}
