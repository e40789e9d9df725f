// Package bookmarks keeps the user's ordered list of favourite clusters.
package bookmarks

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"kore/internal/kvstore"
	"kore/internal/observe"
	"kore/pkg/logging"
)

// StorageKey is the key the list is persisted under.
const StorageKey = "kore-bookmarks"

const subsystem = "Bookmarks"

// ErrIndexOutOfRange is returned by Reorder for an index outside the list.
var ErrIndexOutOfRange = errors.New("bookmark index out of range")

// Bookmark marks one cluster as a favourite. Order is the bookmark's position
// in the list.
type Bookmark struct {
	ID        string `json:"id"`
	ClusterID string `json:"clusterId"`
	Order     int    `json:"order"`
}

// List is the bookmark list. It is always sorted by Order, orders are exactly
// 0..n-1 and a cluster is bookmarked at most once.
type List struct {
	store kvstore.Store
	hub   *observe.Hub
	newID func() string

	mu    sync.RWMutex
	items []Bookmark
}

// Option configures a List.
type Option func(*List)

// WithHub publishes changes on hub under observe.TopicBookmarks.
func WithHub(hub *observe.Hub) Option {
	return func(l *List) { l.hub = hub }
}

// WithIDGenerator replaces the bookmark id generator.
func WithIDGenerator(gen func() string) Option {
	return func(l *List) { l.newID = gen }
}

// New restores the persisted list from store. Missing or unparsable data
// yields an empty list.
func New(store kvstore.Store, opts ...Option) *List {
	l := &List{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(l)
	}
	l.load()
	return l
}

func (l *List) load() {
	var stored []Bookmark
	found, err := kvstore.LoadJSON(l.store, StorageKey, &stored)
	if err != nil {
		logging.Warn(subsystem, "Ignoring stored bookmarks: %v", err)
		return
	}
	if !found {
		return
	}
	l.items = normalize(stored)
	if len(l.items) != len(stored) {
		logging.Warn(subsystem, "Dropped %d invalid or duplicate stored bookmarks", len(stored)-len(l.items))
	}
	logging.Debug(subsystem, "Restored %d bookmarks", len(l.items))
}

// normalize sorts by stored order, keeps the first bookmark per cluster and
// renumbers orders densely.
func normalize(stored []Bookmark) []Bookmark {
	sorted := append([]Bookmark(nil), stored...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	seen := make(map[string]bool, len(sorted))
	out := make([]Bookmark, 0, len(sorted))
	for _, b := range sorted {
		if b.ClusterID == "" || seen[b.ClusterID] {
			continue
		}
		seen[b.ClusterID] = true
		out = append(out, b)
	}
	renumber(out)
	return out
}

func renumber(items []Bookmark) {
	for i := range items {
		items[i].Order = i
	}
}

// commitLocked persists the list and notifies observers. Callers hold l.mu.
func (l *List) commitLocked() {
	if err := kvstore.SaveJSON(l.store, StorageKey, l.items); err != nil {
		logging.Error(subsystem, err, "Failed to persist bookmarks")
	}
}

func (l *List) indexOf(clusterID string) int {
	for i, b := range l.items {
		if b.ClusterID == clusterID {
			return i
		}
	}
	return -1
}

// Add bookmarks clusterID at the end of the list. Adding an already
// bookmarked cluster does nothing.
func (l *List) Add(clusterID string) {
	l.mu.Lock()
	if l.indexOf(clusterID) >= 0 {
		l.mu.Unlock()
		return
	}
	l.items = append(l.items, Bookmark{ID: l.newID(), ClusterID: clusterID, Order: len(l.items)})
	l.commitLocked()
	l.mu.Unlock()

	logging.Debug(subsystem, "Bookmarked %s", clusterID)
	l.hub.Publish(observe.TopicBookmarks, "bookmarks")
}

// Remove drops the bookmark of clusterID, if any. Later bookmarks move up one
// position.
func (l *List) Remove(clusterID string) {
	l.mu.Lock()
	i := l.indexOf(clusterID)
	if i < 0 {
		l.mu.Unlock()
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	renumber(l.items)
	l.commitLocked()
	l.mu.Unlock()

	logging.Debug(subsystem, "Removed bookmark for %s", clusterID)
	l.hub.Publish(observe.TopicBookmarks, "bookmarks")
}

// IsBookmarked reports whether clusterID is in the list.
func (l *List) IsBookmarked(clusterID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOf(clusterID) >= 0
}

// Toggle adds or removes clusterID and reports whether it is bookmarked now.
func (l *List) Toggle(clusterID string) bool {
	if l.IsBookmarked(clusterID) {
		l.Remove(clusterID)
		return false
	}
	l.Add(clusterID)
	return true
}

// Reorder moves the bookmark at position from to position to, shifting the
// bookmarks in between by one.
func (l *List) Reorder(from, to int) error {
	l.mu.Lock()
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		l.mu.Unlock()
		return fmt.Errorf("%w: move %d to %d in a list of %d", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		l.mu.Unlock()
		return nil
	}
	moved := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items[:to], append([]Bookmark{moved}, l.items[to:]...)...)
	renumber(l.items)
	l.commitLocked()
	l.mu.Unlock()

	l.hub.Publish(observe.TopicBookmarks, "bookmarks")
	return nil
}

// Bookmarks returns a copy of the list in order.
func (l *List) Bookmarks() []Bookmark {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Bookmark(nil), l.items...)
}

// BookmarkedClusterIDs returns the bookmarked cluster ids in order.
func (l *List) BookmarkedClusterIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, len(l.items))
	for i, b := range l.items {
		ids[i] = b.ClusterID
	}
	return ids
}

// Len returns the number of bookmarks.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}
