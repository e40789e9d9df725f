package kube

import (
	"errors"
	"fmt"
)

// Cluster is a registered remote cluster as the UI knows it.
type Cluster struct {
	ID          string
	Name        string
	ContextName string // kubeconfig context used to reach the cluster
	ConfigPath  string // kubeconfig file; empty means the default loading rules
	Icon        string
	Description string
	Tags        []string
}

// ErrClusterNotFound is returned for ids the directory does not know.
var ErrClusterNotFound = errors.New("cluster not found")

// TransportError reports that a cluster could not be reached or answered with an error.
type TransportError struct {
	ClusterID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cluster %q: %v", e.ClusterID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
