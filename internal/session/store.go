// Package session maps opaque session ids to authenticated user ids. The
// store abstraction lets sessions live in the relational database or in
// Redis without the HTTP layer caring which.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the session does not exist or has expired.
var ErrNotFound = errors.New("session: not found")

// Store persists the session id to user id mapping.
type Store interface {
	// Create generates a new session for userID valid for ttl and returns
	// its opaque id.
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// Get resolves a session id to its user id or returns ErrNotFound.
	Get(ctx context.Context, id string) (string, error)
	// Delete invalidates a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
