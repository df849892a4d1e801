// Package blob stores opaque byte values under string keys.
//
// The employee collection is persisted as a single JSON document, so the
// backends only need whole-value load and save. Backends that can observe
// writes made by other processes also implement Watcher.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("blob: key not found")

// Backend loads and saves whole values.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Watcher is implemented by backends that can report outside changes.
// Watch calls onChange whenever the value under key is replaced by another
// writer, until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, key string, onChange func()) error
}

// Backend names accepted by configuration.
const (
	KindFile   = "file"
	KindMongo  = "mongo"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Kinds lists every supported backend name.
var Kinds = []string{KindFile, KindMongo, KindSQLite, KindMemory}

// ValidKind reports whether name is a supported backend.
func ValidKind(name string) bool {
	for _, k := range Kinds {
		if k == name {
			return true
		}
	}
	return false
}
