// Package selection tracks which cluster and namespace the user is working in
// and keeps the namespace list of the selected cluster in sync with the cluster
// directory.
package selection

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"kore/internal/kvstore"
	"kore/internal/observe"
	"kore/pkg/logging"
)

const (
	// AllNamespaces is the sentinel namespace meaning "no namespace filter".
	AllNamespaces = "all"

	// StorageKey is the key the selection is persisted under.
	StorageKey = "kore-active-cluster"

	subsystem = "Selection"
)

// Directory is the remote capability the coordinator consults.
type Directory interface {
	ListNamespaces(ctx context.Context, clusterID string) ([]string, error)
	ResolveClusterContext(clusterID string) (string, bool)
}

// State is the persisted part of the selection. An empty ClusterID means no
// cluster is selected.
type State struct {
	ClusterID       string
	ActiveNamespace string
}

type persistedState struct {
	ClusterID       *string `json:"clusterId"`
	ActiveNamespace string  `json:"activeNamespace"`
}

// Coordinator owns the selected cluster, the active namespace and the
// namespace set of the selected cluster.
type Coordinator struct {
	dir          Directory
	store        kvstore.Store
	hub          *observe.Hub
	fetchTimeout time.Duration

	mu              sync.RWMutex
	clusterID       string
	activeNamespace string
	namespaces      []string
	loading         bool
	fetchSeq        uint64
	cancelFetch     context.CancelFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithHub publishes changes on hub under observe.TopicSelection.
func WithHub(hub *observe.Hub) Option {
	return func(c *Coordinator) { c.hub = hub }
}

// WithFetchTimeout bounds each namespace listing. Zero means no bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.fetchTimeout = d }
}

// NewCoordinator restores the persisted selection from store, or starts with
// no cluster and the "all" namespace when nothing usable is stored.
func NewCoordinator(dir Directory, store kvstore.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		dir:             dir,
		store:           store,
		activeNamespace: AllNamespaces,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.load()
	return c
}

func (c *Coordinator) load() {
	var p persistedState
	found, err := kvstore.LoadJSON(c.store, StorageKey, &p)
	if err != nil {
		logging.Warn(subsystem, "Ignoring stored selection, using defaults: %v", err)
		return
	}
	if !found {
		logging.Debug(subsystem, "No stored selection, using defaults")
		return
	}
	if p.ClusterID != nil {
		c.clusterID = *p.ClusterID
	}
	if p.ActiveNamespace != "" {
		c.activeNamespace = p.ActiveNamespace
	}
	logging.Debug(subsystem, "Restored selection cluster=%q namespace=%q", c.clusterID, c.activeNamespace)
}

// persistLocked writes the selection. Callers hold c.mu.
func (c *Coordinator) persistLocked() {
	p := persistedState{ActiveNamespace: c.activeNamespace}
	if c.clusterID != "" {
		id := c.clusterID
		p.ClusterID = &id
	}
	if err := kvstore.SaveJSON(c.store, StorageKey, p); err != nil {
		logging.Error(subsystem, err, "Failed to persist selection")
	}
}

// SetCluster selects clusterID ("" for none), resets the namespace to "all" and
// persists. With a cluster selected, the namespace refresh runs in the
// background and SetCluster returns immediately; without one the namespace set
// is cleared before returning. A refresh still running for a previous cluster
// is cancelled and its result discarded.
func (c *Coordinator) SetCluster(clusterID string) {
	c.mu.Lock()
	c.clusterID = clusterID
	c.activeNamespace = AllNamespaces
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	c.persistLocked()

	var fetchCtx context.Context
	seq := c.nextFetchLocked()
	if clusterID == "" {
		c.namespaces = nil
		c.loading = false
	} else {
		c.loading = true
		fetchCtx, c.cancelFetch = context.WithCancel(c.ctx)
		c.wg.Add(1)
	}
	c.mu.Unlock()

	logging.Info(subsystem, "Selected cluster %q", clusterID)
	c.hub.Publish(observe.TopicSelection, "clusterId")

	if clusterID == "" {
		c.hub.Publish(observe.TopicSelection, "namespaces")
		return
	}
	go func() {
		defer c.wg.Done()
		c.fetch(fetchCtx, clusterID, seq)
	}()
}

// Refresh re-lists the namespaces of the selected cluster in the background.
func (c *Coordinator) Refresh() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.FetchNamespaces(c.ctx)
	}()
}

// FetchNamespaces lists the namespaces of the selected cluster and stores them
// sorted. Failures are logged and leave an empty namespace set; they are never
// returned. A result that arrives after the selection moved to another cluster,
// or after ctx was cancelled, is discarded.
func (c *Coordinator) FetchNamespaces(ctx context.Context) {
	c.mu.Lock()
	target := c.clusterID
	if target == "" {
		c.namespaces = nil
		c.loading = false
		c.mu.Unlock()
		c.hub.Publish(observe.TopicSelection, "namespaces")
		return
	}
	seq := c.nextFetchLocked()
	c.loading = true
	c.mu.Unlock()

	c.fetch(ctx, target, seq)
}

// nextFetchLocked numbers a new refresh. Only the newest one clears the
// loading flag. Callers hold c.mu.
func (c *Coordinator) nextFetchLocked() uint64 {
	c.fetchSeq++
	return c.fetchSeq
}

func (c *Coordinator) fetch(ctx context.Context, target string, seq uint64) {
	listCtx := ctx
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		listCtx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}
	names, err := c.dir.ListNamespaces(listCtx, target)

	c.mu.Lock()
	newest := seq == c.fetchSeq
	if newest {
		c.loading = false
	}
	if current := c.clusterID; current != target {
		c.mu.Unlock()
		logging.Debug(subsystem, "Discarding namespaces of %q, selection moved to %q", target, current)
		return
	}
	if ctx.Err() != nil {
		// Cancelled by the caller or by a later selection of the same cluster.
		c.mu.Unlock()
		logging.Debug(subsystem, "Namespace refresh for %q aborted", target)
		if newest {
			c.hub.Publish(observe.TopicSelection, "loading")
		}
		return
	}

	namespaceReset := false
	if err != nil {
		logging.Warn(subsystem, "Failed to list namespaces of %q: %v", target, err)
		c.namespaces = nil
	} else {
		sorted := slices.Clone(names)
		sort.Strings(sorted)
		c.namespaces = sorted
	}
	if c.activeNamespace != AllNamespaces && !slices.Contains(c.namespaces, c.activeNamespace) {
		logging.Info(subsystem, "Namespace %q not found in %q, resetting to %q", c.activeNamespace, target, AllNamespaces)
		c.activeNamespace = AllNamespaces
		c.persistLocked()
		namespaceReset = true
	}
	c.mu.Unlock()

	c.hub.Publish(observe.TopicSelection, "namespaces")
	if namespaceReset {
		c.hub.Publish(observe.TopicSelection, "activeNamespace")
	}
}

// SetNamespace stores ns verbatim and persists it. ns is not checked against the
// namespace set.
func (c *Coordinator) SetNamespace(ns string) {
	c.mu.Lock()
	c.activeNamespace = ns
	c.persistLocked()
	c.mu.Unlock()

	c.hub.Publish(observe.TopicSelection, "activeNamespace")
}

// ClusterID returns the selected cluster id, "" when none.
func (c *Coordinator) ClusterID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clusterID
}

// ActiveNamespace returns the active namespace or AllNamespaces.
func (c *Coordinator) ActiveNamespace() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeNamespace
}

// Namespaces returns a copy of the namespace set, sorted ascending.
func (c *Coordinator) Namespaces() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.namespaces)
}

// Loading reports whether a namespace refresh for the selected cluster is in flight.
func (c *Coordinator) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Snapshot returns the persisted fields.
func (c *Coordinator) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{ClusterID: c.clusterID, ActiveNamespace: c.activeNamespace}
}

// ContextName resolves the selected cluster to its kubeconfig context name.
func (c *Coordinator) ContextName() (string, bool) {
	id := c.ClusterID()
	if id == "" {
		return "", false
	}
	return c.dir.ResolveClusterContext(id)
}

// Wait blocks until background refreshes started so far have finished.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight refreshes and waits for them.
func (c *Coordinator) Close() {
	c.cancel()
	c.wg.Wait()
}
