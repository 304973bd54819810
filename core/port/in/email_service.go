package in

import (
	"context"

	"quotable_server/core/domain"
)

// EmailService is the authenticated mailbox surface. Every call resolves the
// session's bearer token first and fails with SESSION_NOT_FOUND when the
// session is unknown.
type EmailService interface {
	List(ctx context.Context, sessionID string, opts domain.ListOptions) ([]domain.Message, error)
	Get(ctx context.Context, sessionID, messageID string) (*domain.Message, error)
	Attachments(ctx context.Context, sessionID, messageID string) ([]domain.Attachment, error)
	Send(ctx context.Context, sessionID string, req *domain.SendRequest) error
	SendSimple(ctx context.Context, sessionID string, req *domain.SimpleSendRequest) error
	CreateDraft(ctx context.Context, sessionID string, req *domain.SendRequest) (*domain.Message, error)
	SetRead(ctx context.Context, sessionID, messageID string, read bool) error
	Delete(ctx context.Context, sessionID, messageID string) error
	Reply(ctx context.Context, sessionID, messageID string, req *domain.ReplyRequest) error
	Forward(ctx context.Context, sessionID, messageID string, req *domain.ForwardRequest) error
}
