package app

import (
	"context"
	"os"

	"kore/internal/tools"
	"kore/internal/tui"
	"kore/pkg/logging"
)

// RunTUI runs the interactive terminal UI until the user quits.
func (a *Application) RunTUI(ctx context.Context) error {
	logging.Info("CLI", "Starting TUI mode...")

	// Switch logging to channel-based system for TUI integration
	logLevel := logging.LevelInfo
	if a.config.Debug {
		logLevel = logging.LevelDebug
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	s := a.services
	a.refreshRestoredSelection()

	p := tui.NewProgram(tui.Options{
		Catalog:   s.Directory,
		Selection: s.Selection,
		Bookmarks: s.Bookmarks,
		Drawer:    s.Drawer,
		Settings:  s.Settings,
		Hub:       s.Hub,
		Debug:     a.config.Debug,
	}, logChan)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return nil
}

// ServeMCP serves the state tools over stdio until ctx is done or stdin closes.
func (a *Application) ServeMCP(ctx context.Context, version string) error {
	s := a.services
	a.refreshRestoredSelection()

	st := tools.NewStateTools(s.Directory, s.Selection, s.Bookmarks, s.Settings)
	return tools.ServeStdio(ctx, tools.NewServer(version, st), os.Stdin, os.Stdout)
}

// refreshRestoredSelection lists the namespaces of a cluster restored from the
// store, which also resets a stored namespace the cluster no longer has.
func (a *Application) refreshRestoredSelection() {
	sel := a.services.Selection
	if id := sel.ClusterID(); id != "" {
		logging.Debug("Bootstrap", "Refreshing namespaces of restored cluster %s", id)
		sel.Refresh()
	}
}
