package http

import (
	"github.com/gofiber/fiber/v2"

	"quotable_server/core/port/in"
	"quotable_server/pkg/apperr"
	"quotable_server/pkg/logger"
)

// AuthHandler exposes the OAuth login flow over HTTP.
type AuthHandler struct {
	auth in.AuthService
}

func NewAuthHandler(auth in.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes mounts the auth endpoints onto the given router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	grp := router.Group("/auth")
	grp.Get("/login", h.Login)
	grp.Get("/callback", h.Callback)
	grp.Get("/status", h.Status)
	grp.Post("/logout", h.Logout)
}

// Login starts a new OAuth flow and returns the provider URL plus the
// session id the client must echo back on later calls.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	init, err := h.auth.Initiate(c.Context())
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, fiber.Map{
		"auth_url":   init.AuthURL,
		"session_id": init.SessionID,
	})
}

// Callback completes the flow with the authorization code. The state
// parameter is the session id issued at login.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		return AppErrorResponse(c, apperr.MissingField("code"))
	}
	if state == "" {
		return AppErrorResponse(c, apperr.MissingField("state"))
	}

	status, err := h.auth.Complete(c.Context(), code, state)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, status)
}

// Status reports whether the caller's session holds valid credentials.
// It never fails: problems surface as an unauthenticated status.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, h.auth.Status(c.Context(), sessionID))
}

// Logout discards the caller's session. Unknown sessions are a no-op.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID, err := GetSessionID(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	if err := h.auth.Logout(c.Context(), sessionID); err != nil {
		return AppErrorResponse(c, err)
	}
	logger.WithField("session_id", sessionID).Info("[AuthHandler.Logout] Session logged out")
	return SuccessResponse(c, fiber.Map{"message": "Logged out successfully"})
}
