package out

import (
	"context"

	"quotable_server/core/domain"
)

// IdentityProvider is the OAuth2 authorization-code capability. The exchange
// itself is delegated here; the auth service only sequences the flow.
type IdentityProvider interface {
	// AuthCodeURL builds the provider authorization URL carrying state as
	// the correlation token.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a token payload. Failures
	// carry the provider's error description.
	Exchange(ctx context.Context, code string) (*domain.TokenPayload, error)
}
