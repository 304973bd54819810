package http

import (
	"github.com/gofiber/fiber/v2"

	"quotable_server/core/domain"
	"quotable_server/core/port/in"
	"quotable_server/pkg/apperr"
)

// EmailHandler exposes the mailbox surface over HTTP. Every route requires
// the session header; token resolution happens inside the service.
type EmailHandler struct {
	emails   in.EmailService
	analysis in.AnalysisService
}

func NewEmailHandler(emails in.EmailService, analysis in.AnalysisService) *EmailHandler {
	return &EmailHandler{
		emails:   emails,
		analysis: analysis,
	}
}

// RegisterRoutes mounts the mailbox endpoints onto the given router.
func (h *EmailHandler) RegisterRoutes(router fiber.Router) {
	grp := router.Group("/emails")

	grp.Get("/", h.List)

	// Convenience views over the same list pipeline. Static segments go
	// before the :id routes so they are not swallowed as message ids.
	grp.Get("/today", h.Today)
	grp.Get("/this-week", h.ThisWeek)
	grp.Get("/recent", h.Recent)
	grp.Get("/unread", h.Unread)
	grp.Get("/sent", h.Sent)
	grp.Get("/with-attachments", h.WithAttachments)
	grp.Get("/important", h.Important)
	grp.Get("/from/:sender", h.FromSender)

	grp.Post("/send", h.Send)
	grp.Post("/send-simple", h.SendSimple)
	grp.Post("/drafts", h.CreateDraft)

	grp.Get("/:id", h.Get)
	grp.Get("/:id/attachments", h.Attachments)
	grp.Patch("/:id/read", h.SetRead)
	grp.Delete("/:id", h.Delete)
	grp.Post("/:id/reply", h.Reply)
	grp.Post("/:id/forward", h.Forward)
	grp.Post("/:id/analyze", h.Analyze)
}

func (h *EmailHandler) list(c *fiber.Ctx, opts domain.ListOptions) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messages, err := h.emails.List(c.Context(), sessionID, opts)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{
		"count":    len(messages),
		"messages": messages,
	})
}

// List returns messages with the full filter surface exposed as query
// parameters.
func (h *EmailHandler) List(c *fiber.Ctx) error {
	return h.list(c, listOptionsFromQuery(c, 25))
}

// Today returns today's messages.
func (h *EmailHandler) Today(c *fiber.Ctx) error {
	opts := listOptionsFromQuery(c, 50)
	opts.DateFilter = domain.DateToday
	return h.list(c, opts)
}

// ThisWeek returns messages received since Monday.
func (h *EmailHandler) ThisWeek(c *fiber.Ctx) error {
	opts := listOptionsFromQuery(c, 50)
	opts.DateFilter = domain.DateThisWeek
	return h.list(c, opts)
}

// Recent returns messages from the last seven days.
func (h *EmailHandler) Recent(c *fiber.Ctx) error {
	opts := listOptionsFromQuery(c, 50)
	opts.DateFilter = domain.DateLast7Days
	return h.list(c, opts)
}

// Unread returns unread messages.
func (h *EmailHandler) Unread(c *fiber.Ctx) error {
	opts := listOptionsFromQuery(c, 25)
	opts.UnreadOnly = true
	return h.list(c, opts)
}

// Sent returns messages from the sent items folder.
func (h *EmailHandler) Sent(c *fiber.Ctx) error {
	opts := listOptionsFromQuery(c, 25)
	opts.Folder = "sentitems"
	return h.list(c, opts)
}

// WithAttachments returns messages carrying attachments.
func (h *EmailHandler) WithAttachments(c *fiber.Ctx) error {
	opts := listOptionsFromQuery(c, 25)
	yes := true
	opts.HasAttachments = &yes
	return h.list(c, opts)
}

// Important returns high-importance messages via $search, which Graph allows
// to combine with paging but not with $filter.
func (h *EmailHandler) Important(c *fiber.Ctx) error {
	opts := listOptionsFromQuery(c, 25)
	opts.Search = "importance:high"
	return h.list(c, opts)
}

// FromSender returns messages from a single address.
func (h *EmailHandler) FromSender(c *fiber.Ctx) error {
	sender, err := urlParam(c, "sender")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	opts := listOptionsFromQuery(c, 25)
	opts.FromAddress = sender
	return h.list(c, opts)
}

// Get returns one message with its full body.
func (h *EmailHandler) Get(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messageID, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	message, err := h.emails.Get(c.Context(), sessionID, messageID)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, message)
}

// Attachments returns the attachment list of one message.
func (h *EmailHandler) Attachments(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messageID, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	attachments, err := h.emails.Attachments(c.Context(), sessionID, messageID)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{
		"count":       len(attachments),
		"attachments": attachments,
	})
}

// Send sends a message with the full recipient and attachment surface.
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var req domain.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
	}
	if err := h.emails.Send(c.Context(), sessionID, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{"message": "Email sent successfully"})
}

// SendSimple sends a message from comma-separated recipients.
func (h *EmailHandler) SendSimple(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var req domain.SimpleSendRequest
	if err := c.BodyParser(&req); err != nil {
		return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
	}
	if err := h.emails.SendSimple(c.Context(), sessionID, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{"message": "Email sent successfully"})
}

// CreateDraft saves a message into the drafts folder without sending it.
func (h *EmailHandler) CreateDraft(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var req domain.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
	}
	draft, err := h.emails.CreateDraft(c.Context(), sessionID, &req)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return CreatedResponse(c, draft)
}

type setReadRequest struct {
	IsRead *bool `json:"is_read"`
}

// SetRead marks a message read or unread. Defaults to read when the body
// omits the flag.
func (h *EmailHandler) SetRead(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messageID, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	req := setReadRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
		}
	}
	read := true
	if req.IsRead != nil {
		read = *req.IsRead
	}
	if err := h.emails.SetRead(c.Context(), sessionID, messageID, read); err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{"message_id": messageID, "is_read": read})
}

// Delete moves a message to deleted items.
func (h *EmailHandler) Delete(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messageID, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	if err := h.emails.Delete(c.Context(), sessionID, messageID); err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{"message": "Email deleted successfully"})
}

// Reply replies to a message, optionally to all recipients.
func (h *EmailHandler) Reply(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messageID, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var req domain.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
	}
	if err := h.emails.Reply(c.Context(), sessionID, messageID, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{"message": "Reply sent successfully"})
}

// Forward forwards a message to new recipients.
func (h *EmailHandler) Forward(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messageID, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	var req domain.ForwardRequest
	if err := c.BodyParser(&req); err != nil {
		return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
	}
	if err := h.emails.Forward(c.Context(), sessionID, messageID, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{"message": "Email forwarded successfully"})
}

// Analyze runs intent classification and product extraction over one
// message. Classification failures come back as a negative result, not an
// error response.
func (h *EmailHandler) Analyze(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	messageID, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	result, err := h.analysis.Analyze(c.Context(), sessionID, messageID)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, result)
}
