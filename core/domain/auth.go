package domain

import (
	"time"

	"github.com/goccy/go-json"
)

// TokenPayload is the credential set issued by the identity provider for one
// session. Raw carries the provider's token response verbatim so nothing is
// lost when a store round-trips it.
type TokenPayload struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	TokenType    string          `json:"token_type,omitempty"`
	ExpiresAt    time.Time       `json:"expires_at,omitempty"`
	Raw          json.RawMessage `json:"raw,omitempty"`
}

// AuthInitiation is returned when the authorization-code flow is started.
type AuthInitiation struct {
	AuthURL   string `json:"auth_url"`
	SessionID string `json:"session_id"`
}

// AuthStatus is the explicit result of an authentication check or callback.
// It never doubles as an error: not-authenticated outcomes carry a message
// instead of raising.
type AuthStatus struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	UserEmail       string `json:"user_email,omitempty"`
	Message         string `json:"message"`
}
