// Package metadata is a small key/value store for local client state that
// must survive restarts: the chosen identity, the per-install device id, and
// per-user read-notification ids.
package metadata

import "context"

// Repository describes the key/value operations backed by the local database.
// Get returns common.ErrorNotFound for missing keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
