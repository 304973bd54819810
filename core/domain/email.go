package domain

import "time"

// EmailAddress is a single mailbox address with an optional display name.
type EmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// Recipient wraps an address the way Microsoft Graph does.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Body is a message body with its content type ("text" or "html").
type Body struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Message is a mailbox message as surfaced to clients. Field names mirror the
// Graph wire format so the frontend can consume responses unchanged.
type Message struct {
	ID               string       `json:"id"`
	Subject          string       `json:"subject"`
	BodyPreview      string       `json:"bodyPreview,omitempty"`
	Body             *Body        `json:"body,omitempty"`
	From             *Recipient   `json:"from,omitempty"`
	ToRecipients     []Recipient  `json:"toRecipients,omitempty"`
	CcRecipients     []Recipient  `json:"ccRecipients,omitempty"`
	ReceivedDateTime time.Time    `json:"receivedDateTime"`
	SentDateTime     time.Time    `json:"sentDateTime"`
	IsRead           bool         `json:"isRead"`
	IsDraft          bool         `json:"isDraft"`
	Importance       string       `json:"importance,omitempty"`
	HasAttachments   bool         `json:"hasAttachments"`
	ConversationID   string       `json:"conversationId,omitempty"`
	WebLink          string       `json:"webLink,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
}

// BodyText returns the plain content of the message body, empty when the body
// was not requested.
func (m *Message) BodyText() string {
	if m.Body == nil {
		return ""
	}
	return m.Body.Content
}

// Attachment is an attachment summary. ContentBytes is only populated when a
// single attachment is fetched, never on list responses.
type Attachment struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
	IsInline     bool   `json:"isInline"`
	ContentBytes string `json:"contentBytes,omitempty"`
}

// RecipientInput is a recipient supplied by an API caller.
type RecipientInput struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AttachmentInput is a file attachment supplied by an API caller.
type AttachmentInput struct {
	Name          string `json:"name"`
	ContentType   string `json:"content_type"`
	ContentBase64 string `json:"content_base64"`
}

// SendRequest describes an outbound message.
type SendRequest struct {
	Subject         string            `json:"subject"`
	Body            string            `json:"body"`
	BodyContentType string            `json:"body_content_type"` // "text" or "html"
	ToRecipients    []RecipientInput  `json:"to_recipients"`
	CcRecipients    []RecipientInput  `json:"cc_recipients,omitempty"`
	BccRecipients   []RecipientInput  `json:"bcc_recipients,omitempty"`
	Importance      string            `json:"importance,omitempty"`
	Attachments     []AttachmentInput `json:"attachments,omitempty"`
	SaveToSent      *bool             `json:"save_to_sent,omitempty"`
}

// SimpleSendRequest is the minimal send surface: comma-separated recipients,
// subject, body.
type SimpleSendRequest struct {
	To       string   `json:"to"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	BodyType string   `json:"body_type,omitempty"`
	Cc       []string `json:"cc,omitempty"`
}

// ReplyRequest describes a reply to an existing message.
type ReplyRequest struct {
	ReplyBody string `json:"reply_body,omitempty"`
	ReplyAll  bool   `json:"reply_all,omitempty"`
}

// ForwardRequest describes forwarding an existing message.
type ForwardRequest struct {
	ToRecipients []string `json:"to_recipients"`
	Comment      string   `json:"comment,omitempty"`
}

// Profile is the authenticated mailbox owner.
type Profile struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName,omitempty"`
	Mail              string `json:"mail,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
}

// Email returns the best available address for the profile.
func (p *Profile) Email() string {
	if p.Mail != "" {
		return p.Mail
	}
	return p.UserPrincipalName
}
