// Package metadata is a small key/value store for client settings that must
// survive restarts, such as the last connected account.
package metadata

import (
	"context"
)

// Keys used by the client.
const (
	KeyAccount = "account"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
