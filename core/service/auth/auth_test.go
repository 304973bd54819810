package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotable_server/adapter/out/session"
	"quotable_server/core/domain"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"
)

type stubIdentity struct {
	token *domain.TokenPayload
	err   error
}

func (s *stubIdentity) AuthCodeURL(state string) string {
	return "https://login.example.com/authorize?state=" + state
}

func (s *stubIdentity) Exchange(context.Context, string) (*domain.TokenPayload, error) {
	return s.token, s.err
}

// stubMail implements only GetProfile; the embedded interface covers the
// rest of the surface, which these tests never touch.
type stubMail struct {
	out.MailProvider
	profile    *domain.Profile
	profileErr error
}

func (s *stubMail) GetProfile(context.Context, string) (*domain.Profile, error) {
	return s.profile, s.profileErr
}

func TestInitiateEmbedsSessionIDAsState(t *testing.T) {
	svc := NewService(&stubIdentity{}, session.NewMemoryStore(), &stubMail{})

	init, err := svc.Initiate(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, init.SessionID)
	assert.Contains(t, init.AuthURL, "state="+init.SessionID)
}

func TestCompleteSuccessStoresSession(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(
		&stubIdentity{token: &domain.TokenPayload{AccessToken: "tok"}},
		store,
		&stubMail{profile: &domain.Profile{Mail: "alice@contoso.com"}},
	)

	status, err := svc.Complete(context.Background(), "code", "sess-1")
	require.NoError(t, err)
	assert.True(t, status.IsAuthenticated)
	assert.Equal(t, "alice@contoso.com", status.UserEmail)

	stored, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", stored.AccessToken)
}

func TestCompleteExchangeFailureWritesNothing(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(
		&stubIdentity{err: apperr.OAuthFailed("AADSTS70008: expired authorization code", nil)},
		store,
		&stubMail{},
	)

	status, err := svc.Complete(context.Background(), "bad-code", "sess-1")
	require.NoError(t, err, "exchange failure must surface as a status, not an error")
	assert.False(t, status.IsAuthenticated)
	assert.Contains(t, status.Message, "AADSTS70008")

	_, err = store.Get(context.Background(), "sess-1")
	assert.True(t, apperr.IsCode(err, apperr.CodeSessionNotFound),
		"no session may be stored after a failed exchange")
}

func TestCompleteProfileFailureKeepsSession(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(
		&stubIdentity{token: &domain.TokenPayload{AccessToken: "tok"}},
		store,
		&stubMail{profileErr: apperr.Upstream("graph", "temporarily unavailable")},
	)

	status, err := svc.Complete(context.Background(), "code", "sess-1")
	require.NoError(t, err)
	assert.True(t, status.IsAuthenticated)
	assert.Empty(t, status.UserEmail)

	_, err = store.Get(context.Background(), "sess-1")
	assert.NoError(t, err, "profile lookup failure must not roll back the session")
}

func TestStatusNeverErrors(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(store *session.MemoryStore) *Service
		wantAuth    bool
		wantMessage string
	}{
		{
			name: "unknown session",
			setup: func(store *session.MemoryStore) *Service {
				return NewService(&stubIdentity{}, store, &stubMail{})
			},
			wantAuth:    false,
			wantMessage: "Session not found or expired",
		},
		{
			name: "provider failure",
			setup: func(store *session.MemoryStore) *Service {
				_ = store.Save(context.Background(), "sess-1", &domain.TokenPayload{AccessToken: "tok"})
				return NewService(&stubIdentity{}, store,
					&stubMail{profileErr: apperr.Upstream("graph", "boom")})
			},
			wantAuth:    false,
			wantMessage: "Error: boom",
		},
		{
			name: "valid session",
			setup: func(store *session.MemoryStore) *Service {
				_ = store.Save(context.Background(), "sess-1", &domain.TokenPayload{AccessToken: "tok"})
				return NewService(&stubIdentity{}, store,
					&stubMail{profile: &domain.Profile{UserPrincipalName: "bob@contoso.com"}})
			},
			wantAuth:    true,
			wantMessage: "Session status: authenticated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			svc := tt.setup(store)

			status := svc.Status(context.Background(), "sess-1")
			assert.Equal(t, tt.wantAuth, status.IsAuthenticated)
			assert.Equal(t, tt.wantMessage, status.Message)
		})
	}
}

func TestLogoutIdempotent(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(&stubIdentity{}, store, &stubMail{})
	ctx := context.Background()

	_ = store.Save(ctx, "sess-1", &domain.TokenPayload{AccessToken: "tok"})

	require.NoError(t, svc.Logout(ctx, "sess-1"))
	require.NoError(t, svc.Logout(ctx, "sess-1"), "second logout of the same session must succeed")

	status := svc.Status(ctx, "sess-1")
	assert.False(t, status.IsAuthenticated)
}
