package session

import (
	"context"
	"errors"
)

// ErrNoRecord is returned by a Persister when nothing is stored under a key.
var ErrNoRecord = errors.New("no persisted session record")

// DefaultKey is the well-known key of the current-session record.
const DefaultKey = "user"

// Persister is durable key-value storage for the session record.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	// Delete is idempotent: removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
