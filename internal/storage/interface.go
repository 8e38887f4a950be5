package storage

import "errors"

// ErrNotInitialized is returned by Load when the backing store has not been created yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'daytrack init' first")

// KV is the key/value capability the tracker persists through. Absent keys
// report ok=false with a nil error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type Provider interface {
	KV

	// Lifecycle
	Init() error
	Load() error
	Close() error

	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
