// Package auth implements the authorization-code flow and session lifecycle.
package auth

import (
	"context"

	"github.com/google/uuid"

	"quotable_server/core/domain"
	"quotable_server/core/port/in"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"
	"quotable_server/pkg/logger"
)

// Service orchestrates initiate → exchange → verify on top of the session
// store. The store is the only state it owns; the provider holds the pending
// flow between initiate and callback.
type Service struct {
	identity out.IdentityProvider
	sessions out.SessionStore
	mail     out.MailProvider
}

// NewService creates the auth service.
func NewService(identity out.IdentityProvider, sessions out.SessionStore, mail out.MailProvider) *Service {
	return &Service{
		identity: identity,
		sessions: sessions,
		mail:     mail,
	}
}

// Initiate starts the flow: a fresh session identifier is embedded in the
// authorization URL as correlation state. Nothing is stored yet.
func (s *Service) Initiate(_ context.Context) (*domain.AuthInitiation, error) {
	sessionID := uuid.NewString()
	return &domain.AuthInitiation{
		AuthURL:   s.identity.AuthCodeURL(sessionID),
		SessionID: sessionID,
	}, nil
}

// Complete exchanges the authorization code and stores the session. An
// exchange failure is an unauthenticated status carrying the provider's
// error text, never an error; nothing is written in that case. A profile
// lookup failure after a successful exchange does NOT roll back the session:
// token validity and profile lookup are independent concerns.
func (s *Service) Complete(ctx context.Context, code, sessionID string) (*domain.AuthStatus, error) {
	token, err := s.identity.Exchange(ctx, code)
	if err != nil {
		logger.WithError(err).Warn("token exchange failed for session %s", sessionID)
		return &domain.AuthStatus{
			IsAuthenticated: false,
			Message:         "Authentication failed: " + apperr.AsAppError(err).Message,
		}, nil
	}

	if err := s.sessions.Save(ctx, sessionID, token); err != nil {
		return nil, err
	}

	status := &domain.AuthStatus{
		IsAuthenticated: true,
		Message:         "Authentication successful",
	}

	profile, err := s.mail.GetProfile(ctx, token.AccessToken)
	if err != nil {
		logger.WithError(err).Warn("profile lookup failed after exchange, keeping session %s", sessionID)
		return status, nil
	}
	status.UserEmail = profile.Email()

	return status, nil
}

// Status checks the session fail-soft: an unknown session and a transport
// failure both map to not-authenticated, with distinct messages so callers
// can tell them apart.
func (s *Service) Status(ctx context.Context, sessionID string) *domain.AuthStatus {
	token, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return &domain.AuthStatus{
			IsAuthenticated: false,
			Message:         "Session not found or expired",
		}
	}

	profile, err := s.mail.GetProfile(ctx, token.AccessToken)
	if err != nil {
		return &domain.AuthStatus{
			IsAuthenticated: false,
			Message:         "Error: " + apperr.AsAppError(err).Message,
		}
	}

	return &domain.AuthStatus{
		IsAuthenticated: true,
		UserEmail:       profile.Email(),
		Message:         "Session status: authenticated",
	}
}

// Logout deletes the session. Deleting an absent session succeeds.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

var _ in.AuthService = (*Service)(nil)
