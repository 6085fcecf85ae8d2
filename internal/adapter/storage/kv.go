package storage

import (
	"context"
	"errors"
)

// Persisted client state layout. Values are JSON except the raw token.
const (
	KeyToken       = "token"
	KeyUser        = "userToken"
	KeyAdmin       = "admin"
	KeyFavorites   = "userFav"
	KeySubscribers = "subscribers"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is the durable key-value storage the client state lives in. The browser
// build kept this in localStorage; here it is a file by default, or redis when
// the host application points several devices at shared state.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
