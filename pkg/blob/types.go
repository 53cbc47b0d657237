package blob

import (
	"context"
	"time"
)

// An Object describes one stored artifact as reported by the store.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// A Store holds published artifacts addressed by key.  Put is
// last-write-wins: publishing to an existing key overwrites it.
type Store interface {
	// Put uploads the file at path under key, replacing any
	// existing object.
	Put(ctx context.Context, key, path string) error

	// List returns the objects whose keys start with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)

	Close() error
}
