// Package settings holds the user's display preferences.
package settings

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"kore/internal/kvstore"
	"kore/internal/observe"
	"kore/pkg/logging"
)

// StorageKey is the key settings are persisted under.
const StorageKey = "app-settings"

const subsystem = "Settings"

// SameAsApp makes the code theme follow the application theme.
const SameAsApp = "same-as-app"

// Themes lists the known application themes.
var Themes = []string{"kore", "kore-light", "rusty", "rusty-light", "dracula", "alucard"}

var lightThemes = []string{"kore-light", "rusty-light", "alucard"}

const minRefreshInterval = 500 * time.Millisecond

var (
	ErrUnknownTheme           = errors.New("unknown theme")
	ErrInvalidRefreshInterval = errors.New("invalid refresh interval")
)

// Settings are the user's display preferences.
type Settings struct {
	Theme           string
	CodeTheme       string
	RefreshInterval time.Duration
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{Theme: "kore", CodeTheme: SameAsApp, RefreshInterval: 5 * time.Second}
}

type storedSettings struct {
	Theme           string `json:"theme,omitempty"`
	CodeTheme       string `json:"codeTheme,omitempty"`
	RefreshInterval int64  `json:"refreshInterval,omitempty"` // milliseconds
}

// Store owns the settings and persists every change.
type Store struct {
	store kvstore.Store
	hub   *observe.Hub

	mu    sync.RWMutex
	value Settings
}

// New loads settings from store, merging stored fields over the defaults.
func New(store kvstore.Store, hub *observe.Hub) *Store {
	s := &Store{store: store, hub: hub, value: Defaults()}
	s.load()
	return s
}

func (s *Store) load() {
	var stored storedSettings
	found, err := kvstore.LoadJSON(s.store, StorageKey, &stored)
	if err != nil {
		logging.Warn(subsystem, "Ignoring stored settings: %v", err)
		return
	}
	if !found {
		return
	}
	if slices.Contains(Themes, stored.Theme) {
		s.value.Theme = stored.Theme
	}
	if stored.CodeTheme == SameAsApp || slices.Contains(Themes, stored.CodeTheme) {
		s.value.CodeTheme = stored.CodeTheme
	}
	if d := time.Duration(stored.RefreshInterval) * time.Millisecond; d >= minRefreshInterval {
		s.value.RefreshInterval = d
	}
}

func (s *Store) update(field string, apply func(*Settings)) {
	s.mu.Lock()
	apply(&s.value)
	stored := storedSettings{
		Theme:           s.value.Theme,
		CodeTheme:       s.value.CodeTheme,
		RefreshInterval: s.value.RefreshInterval.Milliseconds(),
	}
	if err := kvstore.SaveJSON(s.store, StorageKey, stored); err != nil {
		logging.Error(subsystem, err, "Failed to persist settings")
	}
	s.mu.Unlock()

	s.hub.Publish(observe.TopicSettings, field)
}

// SetTheme sets the application theme.
func (s *Store) SetTheme(theme string) error {
	if !slices.Contains(Themes, theme) {
		return fmt.Errorf("%w %q", ErrUnknownTheme, theme)
	}
	s.update("theme", func(v *Settings) { v.Theme = theme })
	return nil
}

// SetCodeTheme sets the code theme, a theme name or SameAsApp.
func (s *Store) SetCodeTheme(theme string) error {
	if theme != SameAsApp && !slices.Contains(Themes, theme) {
		return fmt.Errorf("%w %q", ErrUnknownTheme, theme)
	}
	s.update("codeTheme", func(v *Settings) { v.CodeTheme = theme })
	return nil
}

// SetRefreshInterval sets how often resource views poll.
func (s *Store) SetRefreshInterval(d time.Duration) error {
	if d < minRefreshInterval {
		return fmt.Errorf("%w: %s is below %s", ErrInvalidRefreshInterval, d, minRefreshInterval)
	}
	s.update("refreshInterval", func(v *Settings) { v.RefreshInterval = d })
	return nil
}

// Get returns the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// EffectiveCodeTheme resolves SameAsApp to the application theme.
func (s *Store) EffectiveCodeTheme() string {
	v := s.Get()
	if v.CodeTheme == SameAsApp {
		return v.Theme
	}
	return v.CodeTheme
}

// IsDark reports whether the application theme has a dark background.
func (s *Store) IsDark() bool {
	return !slices.Contains(lightThemes, s.Get().Theme)
}
