package http

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"quotable_server/core/domain"
	"quotable_server/pkg/apperr"
	"quotable_server/pkg/logger"
)

// SessionHeader carries the opaque session identifier on every
// authenticated call.
const SessionHeader = "X-Session-Id"

// GetSessionID extracts the session identifier header. The id is treated as
// a plain string key; validity is the session store's concern.
func GetSessionID(c *fiber.Ctx) (string, error) {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		return "", apperr.Unauthenticated("missing " + SessionHeader + " header")
	}
	return sessionID, nil
}

// =============================================================================
// Standardized Response Helpers
// =============================================================================

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// APIError is the error payload of an APIResponse.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SuccessResponse sends a standardized JSON success response.
func SuccessResponse(c *fiber.Ctx, data any) error {
	requestID, _ := c.Locals("request_id").(string)
	return c.JSON(APIResponse{
		Success:   true,
		Data:      data,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// CreatedResponse sends a 201 success response.
func CreatedResponse(c *fiber.Ctx, data any) error {
	c.Status(fiber.StatusCreated)
	return SuccessResponse(c, data)
}

// AppErrorResponse maps any error onto the response envelope via apperr.
func AppErrorResponse(c *fiber.Ctx, err error) error {
	appErr := apperr.AsAppError(err)
	if appErr.Code == apperr.CodeInternalError {
		logger.WithError(err).Error("internal error on %s %s", c.Method(), c.Path())
	}
	requestID, _ := c.Locals("request_id").(string)
	return c.Status(appErr.Status).JSON(APIResponse{
		Success:   false,
		Error:     &APIError{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details},
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// =============================================================================
// Parameter Helpers
// =============================================================================

// urlParam returns a required, URL-decoded path parameter.
func urlParam(c *fiber.Ctx, key string) (string, error) {
	val, err := url.PathUnescape(c.Params(key))
	if err != nil || val == "" {
		return "", apperr.MissingField(key)
	}
	return val, nil
}

// QueryBool parses an optional boolean query parameter; nil when absent.
func QueryBool(c *fiber.Ctx, key string) *bool {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	b := val == "true" || val == "1"
	return &b
}

// listOptionsFromQuery builds ListOptions from the request's query string.
// Validation happens in the service; this only parses.
func listOptionsFromQuery(c *fiber.Ctx, defaultLimit int) domain.ListOptions {
	includeBody := true
	if v := c.Query("include_body"); v != "" {
		includeBody = v == "true" || v == "1"
	}

	return domain.ListOptions{
		Folder:         c.Query("folder", "inbox"),
		Limit:          c.QueryInt("limit", defaultLimit),
		Skip:           c.QueryInt("skip", 0),
		Search:         c.Query("search"),
		DateFilter:     domain.DateFilter(c.Query("date_filter")),
		UnreadOnly:     c.QueryBool("unread_only", false),
		HasAttachments: QueryBool(c, "has_attachments"),
		FromAddress:    c.Query("from_address"),
		OrderBy:        c.Query("order_by", "receivedDateTime desc"),
		IncludeBody:    includeBody,
	}
}
