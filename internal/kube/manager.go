package kube

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"k8s.io/client-go/kubernetes"

	"kore/internal/config"
	"kore/pkg/logging"
)

// Directory is the cluster directory: it knows which clusters exist, which
// kubeconfig context reaches each one, and lists their namespaces.
type Directory struct {
	mu       sync.RWMutex
	clusters map[string]Cluster
	order    []string
	clients  map[string]kubernetes.Interface

	// Concurrent listings of the same cluster share one API call.
	group       singleflight.Group
	listTimeout time.Duration

	newClientset func(Cluster) (kubernetes.Interface, error)
}

// NewDirectory registers the configured clusters and, when discovery is on,
// every kubeconfig context not already claimed by a configured cluster.
func NewDirectory(settings config.KubeSettings, defs []config.ClusterDefinition) *Directory {
	d := &Directory{
		clusters:     make(map[string]Cluster),
		clients:      make(map[string]kubernetes.Interface),
		newClientset: newClientsetForCluster,
		listTimeout:  settings.NamespaceTimeout,
	}
	if d.listTimeout <= 0 {
		d.listTimeout = restTimeout
	}

	claimed := make(map[string]bool)
	for _, def := range defs {
		c := clusterFromDefinition(def, settings.Kubeconfig)
		if err := d.Register(c); err != nil {
			logging.Warn("Directory", "Skipping cluster definition: %v", err)
			continue
		}
		claimed[c.ContextName] = true
	}

	if settings.ShouldDiscoverContexts() {
		kubeconfig, err := LoadKubeconfig(settings.Kubeconfig)
		if err != nil {
			logging.Warn("Directory", "Context discovery skipped: %v", err)
			return d
		}
		for _, name := range ContextNames(kubeconfig) {
			if claimed[name] {
				continue
			}
			if err := d.Register(Cluster{ID: name, Name: name, ContextName: name, ConfigPath: settings.Kubeconfig}); err != nil {
				logging.Debug("Directory", "Discovered context %s not registered: %v", name, err)
			}
		}
	}

	logging.Debug("Directory", "Registered %d clusters", len(d.order))
	return d
}

func clusterFromDefinition(def config.ClusterDefinition, defaultKubeconfig string) Cluster {
	c := Cluster{
		ID:          def.ID,
		Name:        def.Name,
		ContextName: def.Context,
		ConfigPath:  def.Kubeconfig,
		Icon:        def.Icon,
		Description: def.Description,
		Tags:        append([]string(nil), def.Tags...),
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	if c.ContextName == "" {
		c.ContextName = c.ID
	}
	if c.ConfigPath == "" {
		c.ConfigPath = defaultKubeconfig
	}
	return c
}

// Register adds a cluster. Ids must be unique and non-empty.
func (d *Directory) Register(c Cluster) error {
	if c.ID == "" {
		return fmt.Errorf("cluster id is required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.clusters[c.ID]; exists {
		return fmt.Errorf("cluster %s already registered", c.ID)
	}
	d.clusters[c.ID] = c
	d.order = append(d.order, c.ID)
	return nil
}

// Clusters returns all registered clusters in registration order.
func (d *Directory) Clusters() []Cluster {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Cluster, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.clusters[id])
	}
	return out
}

// Cluster looks up a cluster by id.
func (d *Directory) Cluster(id string) (Cluster, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.clusters[id]
	return c, ok
}

// ResolveClusterContext returns the kubeconfig context name for a cluster id.
func (d *Directory) ResolveClusterContext(clusterID string) (string, bool) {
	c, ok := d.Cluster(clusterID)
	if !ok || c.ContextName == "" {
		return "", false
	}
	return c.ContextName, true
}

// ListNamespaces lists the namespace names of a cluster, sorted ascending.
// Every failure is reported as a *TransportError.
//
// Concurrent callers for the same cluster share one API call. The shared call
// is not tied to any caller's context, so a caller that gives up only stops
// waiting and the others still get the answer.
func (d *Directory) ListNamespaces(ctx context.Context, clusterID string) ([]string, error) {
	c, ok := d.Cluster(clusterID)
	if !ok {
		return nil, &TransportError{ClusterID: clusterID, Err: ErrClusterNotFound}
	}

	ch := d.group.DoChan(clusterID, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.listTimeout)
		defer cancel()

		clientset, err := d.client(c)
		if err != nil {
			return nil, err
		}
		names, err := listNamespaceNames(callCtx, clientset)
		if err != nil {
			// Credentials may be refreshed before the next attempt.
			d.dropClient(clusterID)
			return nil, err
		}
		return names, nil
	})

	select {
	case <-ctx.Done():
		return nil, &TransportError{ClusterID: clusterID, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, &TransportError{ClusterID: clusterID, Err: res.Err}
		}
		if res.Shared {
			logging.Debug("Directory", "Namespace listing for %s shared with a concurrent caller", clusterID)
		}
		names := res.Val.([]string)
		return append([]string(nil), names...), nil
	}
}

func (d *Directory) client(c Cluster) (kubernetes.Interface, error) {
	d.mu.RLock()
	clientset, ok := d.clients[c.ID]
	d.mu.RUnlock()
	if ok {
		return clientset, nil
	}

	clientset, err := d.newClientset(c)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.clients[c.ID]; ok {
		return existing, nil
	}
	d.clients[c.ID] = clientset
	return clientset, nil
}

func (d *Directory) dropClient(clusterID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.clients, clusterID)
}
