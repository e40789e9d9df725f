package app

import (
	"errors"
	"fmt"

	"kore/internal/bookmarks"
	"kore/internal/drawer"
	"kore/internal/kube"
	"kore/internal/kvstore"
	"kore/internal/observe"
	"kore/internal/selection"
	"kore/internal/settings"
	"kore/pkg/logging"
)

// Services holds the UI-state components and what they depend on.
type Services struct {
	Store     kvstore.Store
	Hub       *observe.Hub
	Directory *kube.Directory
	Selection *selection.Coordinator
	Bookmarks *bookmarks.List
	Drawer    *drawer.Manager
	Settings  *settings.Store
}

// InitializeServices opens the store and builds every component on top of it.
func InitializeServices(cfg *Config) (*Services, error) {
	store, err := kvstore.Open(cfg.KoreConfig.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.KoreConfig.Store.Backend, err)
	}
	logging.Debug("Services", "Opened %s store", cfg.KoreConfig.Store.Backend)

	hub := observe.NewHub()
	directory := kube.NewDirectory(cfg.KoreConfig.Kube, cfg.KoreConfig.Clusters)

	return &Services{
		Store:     store,
		Hub:       hub,
		Directory: directory,
		Selection: selection.NewCoordinator(directory, store,
			selection.WithHub(hub),
			selection.WithFetchTimeout(cfg.KoreConfig.Kube.NamespaceTimeout),
		),
		Bookmarks: bookmarks.New(store, bookmarks.WithHub(hub)),
		Drawer:    drawer.NewManager(hub),
		Settings:  settings.New(store, hub),
	}, nil
}

// Close stops background work and releases the store. Open drawer tabs are
// closed first so their callbacks can release what they hold.
func (s *Services) Close() error {
	var errs []error
	for _, tab := range s.Drawer.Tabs() {
		if err := s.Drawer.CloseTab(tab.ID); err != nil {
			errs = append(errs, err)
		}
	}
	s.Selection.Close()
	s.Hub.Close()
	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close store: %w", err))
	}
	return errors.Join(errs...)
}
