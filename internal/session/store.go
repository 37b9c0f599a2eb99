package session

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Store is the server-side session table: session id -> user id.
type Store interface {
	// Save stores the mapping. ttl <= 0 keeps it until Delete.
	Save(ctx context.Context, sessionID string, userID int32, ttl time.Duration) error
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, sessionID string) (int32, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, sessionID string) error
}
