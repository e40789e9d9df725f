package kube

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError(t *testing.T) {
	err := &TransportError{ClusterID: "prod", Err: context.DeadlineExceeded}

	assert.Equal(t, `cluster "prod": context deadline exceeded`, err.Error())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	var wrapped error = err
	var target *TransportError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "prod", target.ClusterID)
}

func TestTransportErrorWrapsNotFound(t *testing.T) {
	err := error(&TransportError{ClusterID: "ghost", Err: ErrClusterNotFound})
	assert.ErrorIs(t, err, ErrClusterNotFound)
}
