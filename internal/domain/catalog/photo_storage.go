package catalog

import "context"

// PhotoStorage stores product photo bytes outside the product row
type PhotoStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns shared.ErrNotFound when key is unknown
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
	Delete(ctx context.Context, key string) error
}
