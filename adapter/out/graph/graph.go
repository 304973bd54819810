// Package graph provides the Microsoft Graph mailbox adapter.
package graph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"quotable_server/core/domain"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// Client implements out.MailProvider against the Graph REST API. It is a
// pass-through composer: one attempt per call, upstream errors surfaced with
// Graph's own message, the bearer token supplied by the caller on every call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	query      *QueryBuilder
}

// Config for the Graph client.
type Config struct {
	BaseURL     string
	MaxPageSize int
	HTTPClient  *http.Client
}

// NewClient creates a Graph client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		query:      &QueryBuilder{MaxPageSize: cfg.MaxPageSize},
	}
}

// GetProfile returns the authenticated user.
func (c *Client) GetProfile(ctx context.Context, token string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.get(ctx, token, "/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListMessages lists messages in a folder with the compiled filter.
func (c *Client) ListMessages(ctx context.Context, token string, opts domain.ListOptions) ([]domain.Message, error) {
	params, err := c.query.Build(opts)
	if err != nil {
		return nil, err
	}

	folder := opts.Folder
	if folder == "" {
		folder = "inbox"
	}

	var resp struct {
		Value []graphMessage `json:"value"`
	}
	path := fmt.Sprintf("/me/mailFolders/%s/messages?%s", url.PathEscape(folder), params.Encode())
	if err := c.get(ctx, token, path, &resp); err != nil {
		return nil, err
	}

	messages := make([]domain.Message, len(resp.Value))
	for i := range resp.Value {
		messages[i] = *convertMessage(&resp.Value[i])
	}
	return messages, nil
}

// GetMessage retrieves one message by ID.
func (c *Client) GetMessage(ctx context.Context, token, messageID string) (*domain.Message, error) {
	var msg graphMessage
	if err := c.get(ctx, token, "/me/messages/"+url.PathEscape(messageID), &msg); err != nil {
		return nil, err
	}
	return convertMessage(&msg), nil
}

// ListAttachments retrieves the attachments of a message.
func (c *Client) ListAttachments(ctx context.Context, token, messageID string) ([]domain.Attachment, error) {
	var resp struct {
		Value []graphAttachment `json:"value"`
	}
	path := fmt.Sprintf("/me/messages/%s/attachments", url.PathEscape(messageID))
	if err := c.get(ctx, token, path, &resp); err != nil {
		return nil, err
	}

	attachments := make([]domain.Attachment, len(resp.Value))
	for i, a := range resp.Value {
		attachments[i] = domain.Attachment{
			ID:           a.ID,
			Name:         a.Name,
			ContentType:  a.ContentType,
			Size:         a.Size,
			IsInline:     a.IsInline,
			ContentBytes: a.ContentBytes,
		}
	}
	return attachments, nil
}

// SendMessage sends a message via /me/sendMail.
func (c *Client) SendMessage(ctx context.Context, token string, req *domain.SendRequest) error {
	saveToSent := true
	if req.SaveToSent != nil {
		saveToSent = *req.SaveToSent
	}

	body := struct {
		Message         graphMessage `json:"message"`
		SaveToSentItems bool         `json:"saveToSentItems"`
	}{
		Message:         buildGraphMessage(req),
		SaveToSentItems: saveToSent,
	}

	return c.post(ctx, token, "/me/sendMail", body, nil)
}

// CreateDraft stores a draft and returns the created message.
func (c *Client) CreateDraft(ctx context.Context, token string, req *domain.SendRequest) (*domain.Message, error) {
	var msg graphMessage
	if err := c.post(ctx, token, "/me/messages", buildGraphMessage(req), &msg); err != nil {
		return nil, err
	}
	return convertMessage(&msg), nil
}

// SetRead updates the read state of a message.
func (c *Client) SetRead(ctx context.Context, token, messageID string, read bool) error {
	return c.patch(ctx, token, "/me/messages/"+url.PathEscape(messageID), map[string]bool{
		"isRead": read,
	})
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, token, messageID string) error {
	return c.delete(ctx, token, "/me/messages/"+url.PathEscape(messageID))
}

// Reply replies to a message. With replyAll the reply goes to all recipients.
func (c *Client) Reply(ctx context.Context, token, messageID, comment string, replyAll bool) error {
	action := "reply"
	if replyAll {
		action = "replyAll"
	}

	body := map[string]string{}
	if comment != "" {
		body["comment"] = comment
	}

	path := fmt.Sprintf("/me/messages/%s/%s", url.PathEscape(messageID), action)
	return c.post(ctx, token, path, body, nil)
}

// Forward forwards a message.
func (c *Client) Forward(ctx context.Context, token, messageID string, to []string, comment string) error {
	recipients := make([]graphRecipient, len(to))
	for i, addr := range to {
		recipients[i] = graphRecipient{EmailAddress: graphEmailAddress{Address: addr}}
	}

	body := struct {
		ToRecipients []graphRecipient `json:"toRecipients"`
		Comment      string           `json:"comment,omitempty"`
	}{
		ToRecipients: recipients,
		Comment:      comment,
	}

	path := fmt.Sprintf("/me/messages/%s/forward", url.PathEscape(messageID))
	return c.post(ctx, token, path, body, nil)
}

// HTTP helpers

func (c *Client) get(ctx context.Context, token, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doRequest(req, token, result)
}

func (c *Client) post(ctx context.Context, token, path string, body, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRequest(req, token, result)
}

func (c *Client) patch(ctx context.Context, token, path string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRequest(req, token, nil)
}

func (c *Client) delete(ctx context.Context, token, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doRequest(req, token, nil)
}

func (c *Client) doRequest(req *http.Request, token string, result interface{}) error {
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Upstream("graph", err.Error()).WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperr.NotFound("resource")
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return apperr.Upstream("graph", graphErrorMessage(resp.StatusCode, body)).
			WithDetail("status_code", resp.StatusCode)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// graphErrorMessage extracts the error message from a Graph error body,
// falling back to the raw body.
func graphErrorMessage(status int, body []byte) string {
	var parsed struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return fmt.Sprintf("graph API error %d (%s): %s", status, parsed.Error.Code, parsed.Error.Message)
	}
	return fmt.Sprintf("graph API error %d: %s", status, string(body))
}

// Graph wire types

type graphMessage struct {
	ID               string            `json:"id,omitempty"`
	ConversationID   string            `json:"conversationId,omitempty"`
	Subject          string            `json:"subject"`
	BodyPreview      string            `json:"bodyPreview,omitempty"`
	Body             *graphBody        `json:"body,omitempty"`
	From             *graphRecipient   `json:"from,omitempty"`
	ToRecipients     []graphRecipient  `json:"toRecipients,omitempty"`
	CcRecipients     []graphRecipient  `json:"ccRecipients,omitempty"`
	BccRecipients    []graphRecipient  `json:"bccRecipients,omitempty"`
	IsRead           bool              `json:"isRead,omitempty"`
	IsDraft          bool              `json:"isDraft,omitempty"`
	Importance       string            `json:"importance,omitempty"`
	HasAttachments   bool              `json:"hasAttachments,omitempty"`
	ReceivedDateTime string            `json:"receivedDateTime,omitempty"`
	SentDateTime     string            `json:"sentDateTime,omitempty"`
	WebLink          string            `json:"webLink,omitempty"`
	Attachments      []graphAttachment `json:"attachments,omitempty"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphEmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

type graphAttachment struct {
	ODataType    string `json:"@odata.type,omitempty"`
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size,omitempty"`
	IsInline     bool   `json:"isInline,omitempty"`
	ContentBytes string `json:"contentBytes,omitempty"`
}

func convertMessage(msg *graphMessage) *domain.Message {
	m := &domain.Message{
		ID:             msg.ID,
		Subject:        msg.Subject,
		BodyPreview:    msg.BodyPreview,
		IsRead:         msg.IsRead,
		IsDraft:        msg.IsDraft,
		Importance:     msg.Importance,
		HasAttachments: msg.HasAttachments,
		ConversationID: msg.ConversationID,
		WebLink:        msg.WebLink,
	}

	if msg.Body != nil {
		m.Body = &domain.Body{ContentType: msg.Body.ContentType, Content: msg.Body.Content}
	}
	if msg.From != nil {
		m.From = &domain.Recipient{EmailAddress: domain.EmailAddress{
			Address: msg.From.EmailAddress.Address,
			Name:    msg.From.EmailAddress.Name,
		}}
	}

	m.ToRecipients = convertRecipients(msg.ToRecipients)
	m.CcRecipients = convertRecipients(msg.CcRecipients)

	m.ReceivedDateTime, _ = time.Parse(time.RFC3339, msg.ReceivedDateTime)
	m.SentDateTime, _ = time.Parse(time.RFC3339, msg.SentDateTime)

	if len(msg.Attachments) > 0 {
		m.Attachments = make([]domain.Attachment, len(msg.Attachments))
		for i, a := range msg.Attachments {
			m.Attachments[i] = domain.Attachment{
				ID:          a.ID,
				Name:        a.Name,
				ContentType: a.ContentType,
				Size:        a.Size,
				IsInline:    a.IsInline,
			}
		}
	}

	return m
}

func convertRecipients(recipients []graphRecipient) []domain.Recipient {
	if len(recipients) == 0 {
		return nil
	}
	out := make([]domain.Recipient, len(recipients))
	for i, r := range recipients {
		out[i] = domain.Recipient{EmailAddress: domain.EmailAddress{
			Address: r.EmailAddress.Address,
			Name:    r.EmailAddress.Name,
		}}
	}
	return out
}

func buildGraphMessage(req *domain.SendRequest) graphMessage {
	contentType := "HTML"
	if strings.EqualFold(req.BodyContentType, "text") {
		contentType = "Text"
	}

	importance := req.Importance
	if importance == "" {
		importance = "normal"
	}

	msg := graphMessage{
		Subject: req.Subject,
		Body: &graphBody{
			ContentType: contentType,
			Content:     req.Body,
		},
		Importance:    importance,
		ToRecipients:  buildRecipients(req.ToRecipients),
		CcRecipients:  buildRecipients(req.CcRecipients),
		BccRecipients: buildRecipients(req.BccRecipients),
	}

	if len(req.Attachments) > 0 {
		msg.Attachments = make([]graphAttachment, len(req.Attachments))
		for i, a := range req.Attachments {
			msg.Attachments[i] = graphAttachment{
				ODataType:    "#microsoft.graph.fileAttachment",
				Name:         a.Name,
				ContentType:  a.ContentType,
				ContentBytes: a.ContentBase64,
			}
		}
	}

	return msg
}

func buildRecipients(inputs []domain.RecipientInput) []graphRecipient {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]graphRecipient, len(inputs))
	for i, r := range inputs {
		out[i] = graphRecipient{EmailAddress: graphEmailAddress{
			Address: r.Email,
			Name:    r.Name,
		}}
	}
	return out
}

// Ensure Client implements out.MailProvider
var _ out.MailProvider = (*Client)(nil)
