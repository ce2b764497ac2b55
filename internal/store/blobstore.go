package store

import "context"

// BlobStore is the persistence boundary: opaque encrypted bytes keyed by
// conversation id. Get returns utils.ErrNotFound when the id is unknown.
type BlobStore interface {
	Put(ctx context.Context, id string, data []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}
