package kube

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"kore/internal/config"
	"kore/internal/kvstore"
	"kore/internal/selection"
)

func noDiscovery() config.KubeSettings {
	off := false
	return config.KubeSettings{DiscoverContexts: &off}
}

func TestNewDirectory_Definitions(t *testing.T) {
	d := NewDirectory(noDiscovery(), []config.ClusterDefinition{
		{ID: "prod", Name: "Production", Context: "prod-admin", Tags: []string{"prod"}},
		{ID: "dev"},
		{ID: ""},
		{ID: "prod", Context: "duplicate"},
	})

	clusters := d.Clusters()
	require.Len(t, clusters, 2)
	assert.Equal(t, "prod", clusters[0].ID)
	assert.Equal(t, "Production", clusters[0].Name)
	assert.Equal(t, "dev", clusters[1].Name)
	assert.Equal(t, "dev", clusters[1].ContextName)

	ctxName, ok := d.ResolveClusterContext("prod")
	assert.True(t, ok)
	assert.Equal(t, "prod-admin", ctxName)

	_, ok = d.ResolveClusterContext("unknown")
	assert.False(t, ok)
}

func TestNewDirectory_DiscoversUnclaimedContexts(t *testing.T) {
	path := writeKubeconfig(t, "alpha", "beta", "gamma")

	d := NewDirectory(config.KubeSettings{Kubeconfig: path}, []config.ClusterDefinition{
		{ID: "b", Context: "beta"},
	})

	var ids []string
	for _, c := range d.Clusters() {
		ids = append(ids, c.ID)
		assert.Equal(t, path, c.ConfigPath)
	}
	assert.Equal(t, []string{"b", "alpha", "gamma"}, ids)
}

func TestNewDirectory_DiscoveryFailureIsNotFatal(t *testing.T) {
	d := NewDirectory(config.KubeSettings{Kubeconfig: "/nonexistent/kubeconfig"}, []config.ClusterDefinition{{ID: "only"}})
	assert.Len(t, d.Clusters(), 1)
}

func TestDirectory_ListNamespaces(t *testing.T) {
	d := NewDirectory(noDiscovery(), []config.ClusterDefinition{{ID: "c1"}})
	var built atomic.Int32
	d.newClientset = func(c Cluster) (kubernetes.Interface, error) {
		built.Add(1)
		return fake.NewSimpleClientset(namespace("kube-system"), namespace("default")), nil
	}

	names, err := d.ListNamespaces(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "kube-system"}, names)

	_, err = d.ListNamespaces(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), built.Load(), "clientset should be cached")
}

func TestDirectory_ListNamespaces_UnknownCluster(t *testing.T) {
	d := NewDirectory(noDiscovery(), nil)

	_, err := d.ListNamespaces(context.Background(), "missing")
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "missing", transportErr.ClusterID)
	assert.ErrorIs(t, err, ErrClusterNotFound)
}

func TestDirectory_ListNamespaces_FailureDropsClient(t *testing.T) {
	d := NewDirectory(noDiscovery(), []config.ClusterDefinition{{ID: "c1"}})
	var built atomic.Int32
	d.newClientset = func(c Cluster) (kubernetes.Interface, error) {
		built.Add(1)
		cs := fake.NewSimpleClientset()
		cs.PrependReactor("list", "namespaces", func(action k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, errors.New("dial tcp: connection refused")
		})
		return cs, nil
	}

	for i := 0; i < 2; i++ {
		_, err := d.ListNamespaces(context.Background(), "c1")
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
	}
	assert.Equal(t, int32(2), built.Load(), "failed clients must be rebuilt")
}

func TestDirectory_ListNamespaces_ClientFactoryError(t *testing.T) {
	d := NewDirectory(noDiscovery(), []config.ClusterDefinition{{ID: "c1"}})
	d.newClientset = func(c Cluster) (kubernetes.Interface, error) {
		return nil, errors.New("no such context")
	}

	_, err := d.ListNamespaces(context.Background(), "c1")
	assert.Error(t, err)
}

func TestDirectory_ListNamespaces_Concurrent(t *testing.T) {
	d := NewDirectory(noDiscovery(), []config.ClusterDefinition{{ID: "c1"}})
	d.newClientset = func(c Cluster) (kubernetes.Interface, error) {
		return fake.NewSimpleClientset(namespace("default")), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names, err := d.ListNamespaces(context.Background(), "c1")
			assert.NoError(t, err)
			assert.Equal(t, []string{"default"}, names)
		}()
	}
	wg.Wait()
}

func TestDirectory_ListNamespaces_CancelledCallerDoesNotFailOthers(t *testing.T) {
	d := NewDirectory(noDiscovery(), []config.ClusterDefinition{{ID: "c1"}})
	entered := make(chan struct{}, 4)
	release := make(chan struct{})
	var calls atomic.Int32
	d.newClientset = func(c Cluster) (kubernetes.Interface, error) {
		cs := fake.NewSimpleClientset(namespace("kube-system"), namespace("default"))
		cs.PrependReactor("list", "namespaces", func(action k8stesting.Action) (bool, runtime.Object, error) {
			calls.Add(1)
			entered <- struct{}{}
			<-release
			return false, nil, nil
		})
		return cs, nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := d.ListNamespaces(firstCtx, "c1")
		firstErr <- err
	}()
	<-entered

	// The first caller gives up while its API call is still running.
	cancelFirst()
	err := <-firstErr
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.Canceled)

	type result struct {
		names []string
		err   error
	}
	second := make(chan result, 1)
	go func() {
		names, err := d.ListNamespaces(context.Background(), "c1")
		second <- result{names, err}
	}()

	close(release)
	var r result
	select {
	case r = <-second:
	case <-time.After(5 * time.Second):
		t.Fatal("second listing did not return")
	}

	require.NoError(t, r.err)
	assert.Equal(t, []string{"default", "kube-system"}, r.names)
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestDirectory_ReselectingClusterKeepsNamespaces(t *testing.T) {
	d := NewDirectory(noDiscovery(), []config.ClusterDefinition{{ID: "c1"}})
	entered := make(chan struct{}, 4)
	release := make(chan struct{})
	d.newClientset = func(c Cluster) (kubernetes.Interface, error) {
		cs := fake.NewSimpleClientset(namespace("kube-system"), namespace("default"))
		cs.PrependReactor("list", "namespaces", func(action k8stesting.Action) (bool, runtime.Object, error) {
			entered <- struct{}{}
			<-release
			return false, nil, nil
		})
		return cs, nil
	}

	sel := selection.NewCoordinator(d, kvstore.NewMemoryStore())
	defer sel.Close()

	sel.SetCluster("c1")
	<-entered
	sel.SetCluster("c1")
	close(release)
	sel.Wait()

	assert.Equal(t, []string{"default", "kube-system"}, sel.Namespaces())
	assert.False(t, sel.Loading())
}
