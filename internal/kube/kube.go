package kube

import (
	"context"
	"fmt"
	"sort"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // Important for various auth providers
	"k8s.io/client-go/tools/clientcmd"
)

const restTimeout = 30 * time.Second

// newClientsetForCluster builds a clientset from the cluster's kubeconfig and context.
// No request is made; connectivity problems surface on first use.
func newClientsetForCluster(c Cluster) (kubernetes.Interface, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if c.ConfigPath != "" {
		loadingRules.ExplicitPath = c.ConfigPath
	}
	configOverrides := &clientcmd.ConfigOverrides{CurrentContext: c.ContextName}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get REST config for context %q: %w", c.ContextName, err)
	}
	restConfig.Timeout = restTimeout

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset: %w", err)
	}
	return clientset, nil
}

// listNamespaceNames returns the names of all namespaces, sorted.
func listNamespaceNames(ctx context.Context, clientset kubernetes.Interface) ([]string, error) {
	list, err := clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	sort.Strings(names)
	return names, nil
}
