package out

import (
	"context"

	"quotable_server/core/domain"
)

// MailProvider is the mailbox provider boundary. Every call carries the
// bearer token resolved for the session by the caller; the provider performs
// a single attempt and propagates upstream failures verbatim.
type MailProvider interface {
	// GetProfile returns the authenticated mailbox owner.
	GetProfile(ctx context.Context, token string) (*domain.Profile, error)

	// ListMessages lists messages in a folder using the compiled query.
	ListMessages(ctx context.Context, token string, opts domain.ListOptions) ([]domain.Message, error)

	// GetMessage returns one message, or an apperr with code NOT_FOUND.
	GetMessage(ctx context.Context, token, messageID string) (*domain.Message, error)

	// ListAttachments returns the attachments of a message.
	ListAttachments(ctx context.Context, token, messageID string) ([]domain.Attachment, error)

	// SendMessage sends a message immediately.
	SendMessage(ctx context.Context, token string, req *domain.SendRequest) error

	// CreateDraft stores a message as a draft and returns it.
	CreateDraft(ctx context.Context, token string, req *domain.SendRequest) (*domain.Message, error)

	// SetRead updates the read state of a message.
	SetRead(ctx context.Context, token, messageID string, read bool) error

	// DeleteMessage deletes a message.
	DeleteMessage(ctx context.Context, token, messageID string) error

	// Reply replies to a message, optionally to all recipients.
	Reply(ctx context.Context, token, messageID, comment string, replyAll bool) error

	// Forward forwards a message to the given addresses.
	Forward(ctx context.Context, token, messageID string, to []string, comment string) error
}
