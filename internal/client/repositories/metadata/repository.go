// Package metadata stores small key/value records in the client database.
// The durable credential tier keeps the access token here.
package metadata

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no row.
var ErrNotFound = errors.New("metadata key not found")

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
