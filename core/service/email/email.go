// Package email implements the authenticated mailbox operations.
package email

import (
	"context"
	"strings"

	"quotable_server/core/domain"
	"quotable_server/core/port/in"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"
)

// Service resolves the session's bearer token and delegates to the mail
// provider. It adds no retries and no pagination beyond what the caller
// requests.
type Service struct {
	sessions out.SessionStore
	mail     out.MailProvider
}

// NewService creates the email service.
func NewService(sessions out.SessionStore, mail out.MailProvider) *Service {
	return &Service{
		sessions: sessions,
		mail:     mail,
	}
}

// token resolves the bearer token for the session. A missing session fails
// here, before any outbound call.
func (s *Service) token(ctx context.Context, sessionID string) (string, error) {
	payload, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return payload.AccessToken, nil
}

func (s *Service) List(ctx context.Context, sessionID string, opts domain.ListOptions) ([]domain.Message, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.mail.ListMessages(ctx, token, opts)
}

func (s *Service) Get(ctx context.Context, sessionID, messageID string) (*domain.Message, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.mail.GetMessage(ctx, token, messageID)
}

func (s *Service) Attachments(ctx context.Context, sessionID, messageID string) ([]domain.Attachment, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.mail.ListAttachments(ctx, token, messageID)
}

func (s *Service) Send(ctx context.Context, sessionID string, req *domain.SendRequest) error {
	if len(req.ToRecipients) == 0 {
		return apperr.MissingField("to_recipients")
	}
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mail.SendMessage(ctx, token, req)
}

// SendSimple expands the comma-separated recipient list into a full send
// request.
func (s *Service) SendSimple(ctx context.Context, sessionID string, req *domain.SimpleSendRequest) error {
	var recipients []domain.RecipientInput
	for _, addr := range strings.Split(req.To, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			recipients = append(recipients, domain.RecipientInput{Email: addr})
		}
	}

	var cc []domain.RecipientInput
	for _, addr := range req.Cc {
		cc = append(cc, domain.RecipientInput{Email: addr})
	}

	bodyType := req.BodyType
	if bodyType == "" {
		bodyType = "html"
	}

	return s.Send(ctx, sessionID, &domain.SendRequest{
		Subject:         req.Subject,
		Body:            req.Body,
		BodyContentType: bodyType,
		ToRecipients:    recipients,
		CcRecipients:    cc,
	})
}

func (s *Service) CreateDraft(ctx context.Context, sessionID string, req *domain.SendRequest) (*domain.Message, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.mail.CreateDraft(ctx, token, req)
}

func (s *Service) SetRead(ctx context.Context, sessionID, messageID string, read bool) error {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mail.SetRead(ctx, token, messageID, read)
}

func (s *Service) Delete(ctx context.Context, sessionID, messageID string) error {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mail.DeleteMessage(ctx, token, messageID)
}

func (s *Service) Reply(ctx context.Context, sessionID, messageID string, req *domain.ReplyRequest) error {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mail.Reply(ctx, token, messageID, req.ReplyBody, req.ReplyAll)
}

func (s *Service) Forward(ctx context.Context, sessionID, messageID string, req *domain.ForwardRequest) error {
	if len(req.ToRecipients) == 0 {
		return apperr.MissingField("to_recipients")
	}
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mail.Forward(ctx, token, messageID, req.ToRecipients, req.Comment)
}

var _ in.EmailService = (*Service)(nil)
