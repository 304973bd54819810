package email

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

// recordingMail captures the token and request of the last call; the
// embedded interface covers methods a test never reaches.
type recordingMail struct {
	out.MailProvider

	lastToken string
	lastOpts  domain.ListOptions
	lastSend  *domain.SendRequest
}

func (m *recordingMail) ListMessages(_ context.Context, token string, opts domain.ListOptions) ([]domain.Message, error) {
	m.lastToken = token
	m.lastOpts = opts
	return []domain.Message{}, nil
}

func (m *recordingMail) SendMessage(_ context.Context, token string, req *domain.SendRequest) error {
	m.lastToken = token
	m.lastSend = req
	return nil
}

func authedStore(t *testing.T, sessionID, token string) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), sessionID, &domain.TokenPayload{AccessToken: token}))
	return store
}

func TestListResolvesSessionToken(t *testing.T) {
	mail := &recordingMail{}
	svc := NewService(authedStore(t, "sess-1", "tok-1"), mail)

	_, err := svc.List(context.Background(), "sess-1", domain.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", mail.lastToken)
}

func TestListUnknownSessionFailsBeforeProvider(t *testing.T) {
	mail := &recordingMail{}
	svc := NewService(session.NewMemoryStore(), mail)

	_, err := svc.List(context.Background(), "ghost", domain.ListOptions{})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeSessionNotFound))
	assert.Empty(t, mail.lastToken, "provider must not be called without a session")
}

func TestListValidatesBeforeTokenResolution(t *testing.T) {
	svc := NewService(session.NewMemoryStore(), &recordingMail{})

	// Invalid options on an unknown session must report the validation
	// problem, not the missing session.
	_, err := svc.List(context.Background(), "ghost", domain.ListOptions{Limit: -1})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidationFailed))
}

func TestSendRequiresRecipients(t *testing.T) {
	svc := NewService(authedStore(t, "sess-1", "tok-1"), &recordingMail{})

	err := svc.Send(context.Background(), "sess-1", &domain.SendRequest{Subject: "no one"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeMissingField))
}

func TestSendSimpleExpandsCommaSeparatedRecipients(t *testing.T) {
	mail := &recordingMail{}
	svc := NewService(authedStore(t, "sess-1", "tok-1"), mail)

	err := svc.SendSimple(context.Background(), "sess-1", &domain.SimpleSendRequest{
		To:      "a@example.com, b@example.com ,, c@example.com",
		Subject: "hello",
		Body:    "<p>hi</p>",
	})
	require.NoError(t, err)
	require.NotNil(t, mail.lastSend)
	require.Len(t, mail.lastSend.ToRecipients, 3)
	assert.Equal(t, "b@example.com", mail.lastSend.ToRecipients[1].Email)
	assert.Equal(t, "html", mail.lastSend.BodyContentType, "body type defaults to html")
}

func TestForwardRequiresRecipients(t *testing.T) {
	svc := NewService(authedStore(t, "sess-1", "tok-1"), &recordingMail{})

	err := svc.Forward(context.Background(), "sess-1", "msg-1", &domain.ForwardRequest{})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeMissingField))
}
