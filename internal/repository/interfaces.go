package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is wrapped by stores when a key has no value.
var ErrNotFound = errors.New("not found")

// BlobStore persists opaque documents by key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Snapshot is a saved copy of a key's value.
type Snapshot struct {
	ID        int64
	Key       string
	Value     []byte
	Reason    string
	CreatedAt time.Time
}

// SnapshotStore keeps prior values of a key so destructive writes can be
// rolled back.
type SnapshotStore interface {
	Save(ctx context.Context, key string, value []byte, reason string) (*Snapshot, error)
	Latest(ctx context.Context, key string) (*Snapshot, error)
	List(ctx context.Context, key string) ([]Snapshot, error)
	Delete(ctx context.Context, id int64) error
	Prune(ctx context.Context, key string, keep int) (int64, error)
}
