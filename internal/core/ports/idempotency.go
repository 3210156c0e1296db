package ports

import "context"

// IdempotencyStore remembers client supplied request keys for a while.
type IdempotencyStore interface {
	// Reserve claims key. It returns false when the key was already claimed.
	Reserve(ctx context.Context, key string) (bool, error)

	// Release frees a key whose request failed, so the client can retry with it.
	Release(ctx context.Context, key string) error
}
