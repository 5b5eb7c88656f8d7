// Package storage provides the durable key/value persistence backing the
// layout and preference stores. Each store serializes its whole state as a
// JSON blob under a single key; writes are durable by the time Save returns.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store persists opaque blobs under string keys.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
