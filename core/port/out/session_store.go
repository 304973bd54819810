package out

import (
	"context"

	"quotable_server/core/domain"
)

// SessionStore maps opaque session identifiers to token payloads. The store
// is the single piece of shared mutable state in the system; implementations
// must make individual Save/Get/Delete calls safe for concurrent use, but no
// ordering is guaranteed across distinct identifiers.
type SessionStore interface {
	// Save writes the token payload for the session identifier, replacing
	// any previous value.
	Save(ctx context.Context, sessionID string, token *domain.TokenPayload) error

	// Get returns the token payload, or an apperr with code
	// SESSION_NOT_FOUND when the identifier is unknown.
	Get(ctx context.Context, sessionID string) (*domain.TokenPayload, error)

	// Delete removes the session. Deleting an absent identifier is not an
	// error.
	Delete(ctx context.Context, sessionID string) error
}
