package storage

import "context"

// BlobStore persists image blobs addressed by generated keys and returns
// their public URLs.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}
