// Package blob stores rendered documents (invoice PDFs, spreadsheets) by key.
package blob

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get for a key that was never written.
var ErrNotExist = errors.New("blob: object does not exist")

// Store is a flat key/value object store. Keys use forward slashes.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
