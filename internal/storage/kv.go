package storage

import "context"

// KV is a durable string-keyed store. SetMany writes all values or none.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
}
