package in

import (
	"context"

	"quotable_server/core/domain"
)

// AuthService drives the authorization-code flow and the session lifecycle.
type AuthService interface {
	// Initiate starts the flow: fresh session id plus provider URL.
	Initiate(ctx context.Context) (*domain.AuthInitiation, error)

	// Complete exchanges the code and stores the session. Exchange failure
	// is reported through the returned status, not an error.
	Complete(ctx context.Context, code, sessionID string) (*domain.AuthStatus, error)

	// Status checks the session fail-soft: any failure maps to a
	// not-authenticated status with a distinct message.
	Status(ctx context.Context, sessionID string) *domain.AuthStatus

	// Logout deletes the session; idempotent.
	Logout(ctx context.Context, sessionID string) error
}
