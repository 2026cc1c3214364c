// Package session keeps what a browser storefront would hold in local
// storage (the bearer token and a cached user profile) in a server-side
// record per visitor.
package session

import (
	"context"
	"errors"
)

// Fixed keys inside a visitor record.
const (
	TokenKey = "tinytales_token"
	UserKey  = "tinytales_user"
)

var ErrEmptyID = errors.New("session: empty visitor id")

// Store is a key-value store partitioned by visitor id. Absence of a key is
// reported through the bool result, never as an error.
type Store interface {
	Get(ctx context.Context, id, key string) (string, bool, error)
	Set(ctx context.Context, id, key, value string) error
	Delete(ctx context.Context, id string, keys ...string) error
	Ping(ctx context.Context) error
}
