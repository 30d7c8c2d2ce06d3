package port

import (
	"context"
	"errors"
)

// Keys of the two records the stores persist.
const (
	KeyUser = "user"
	KeyCart = "cart"
)

var ErrNotFound = errors.New("state not found")

// StateStorage is the durable mirror of the in-memory stores. Values are opaque
// serialized snapshots; Get returns ErrNotFound for absent keys.
type StateStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
