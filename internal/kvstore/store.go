// Package kvstore provides the persistent key-value capability shared by the
// UI-state components. Values are opaque strings (JSON snapshots in practice);
// a missing key is reported with ok=false rather than an error.
package kvstore

import (
	"errors"
	"fmt"
	"time"

	"kore/internal/config"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("kvstore: store is closed")

// Store is the persistent key-value capability consumed by the state components.
type Store interface {
	// Read returns the stored value for key. ok is false when the key is absent.
	Read(key string) (value string, ok bool, err error)
	// Write stores value under key, replacing any previous value. It returns
	// only once the value is durable for the backend.
	Write(key, value string) error
	// Close releases backend resources.
	Close() error
}

// Open builds the store selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.StoreBackendFile, "":
		return NewFileStore(cfg.Dir)
	case config.StoreBackendMemory:
		return NewMemoryStore(), nil
	case config.StoreBackendRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.RedisDB, cfg.KeyPrefix, 5*time.Second)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
