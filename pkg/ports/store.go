package ports

import (
	"context"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
)

// SessionStore persists training sessions and their turn history.
// Implementations must be safe for concurrent use and must return copies
// (or otherwise guarantee that callers cannot mutate stored state through
// returned pointers).
type SessionStore interface {
	// Save persists the session, replacing any previous record.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)

	// Recent returns up to limit sessions ordered by start time, newest
	// first. A non-empty deviceID filters to that device.
	Recent(ctx context.Context, deviceID string, limit int) ([]*domain.Session, error)
}
