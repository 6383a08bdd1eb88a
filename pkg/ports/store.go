package ports

import (
	"context"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

// SessionStore defines the interface for persisting conversation sessions.
// A session persists as a single document per ID; per-key read-modify-write
// consistency is the session manager's job, not the store's.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of known sessions.
	List(ctx context.Context) ([]string, error)
}
