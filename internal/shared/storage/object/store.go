package object

import (
	"context"
	"io"
)

// ObjectStore abstracts the bucket of uploaded bill documents.
type ObjectStore interface {
	// Put writes an object at the given key in the default bucket and
	// returns a browser-reachable location for it.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (location string, size int64, err error)
	// Fetch reads the full object from the given bucket and key. An empty
	// bucket selects the default bucket.
	Fetch(ctx context.Context, bucket string, key string) ([]byte, error)
	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, bucket string, key string) error
}
