package http

import (
	"github.com/gofiber/fiber/v2"

	"quotable_server/core/domain"
	"quotable_server/core/service/crm"
	"quotable_server/pkg/apperr"
)

// CRMHandler exposes the opportunity helpers that back the quoting wizard.
type CRMHandler struct {
	crm *crm.Service
}

func NewCRMHandler(svc *crm.Service) *CRMHandler {
	return &CRMHandler{crm: svc}
}

// RegisterRoutes mounts the CRM endpoints onto the given router.
func (h *CRMHandler) RegisterRoutes(router fiber.Router) {
	grp := router.Group("/crm")
	grp.Post("/opportunities", h.CreateOpportunity)
	grp.Get("/opportunities/:id", h.GetOpportunity)
	grp.Post("/deduce-account", h.DeduceAccount)
}

// CreateOpportunity stores a new opportunity record.
func (h *CRMHandler) CreateOpportunity(c *fiber.Ctx) error {
	var opp domain.Opportunity
	if err := c.BodyParser(&opp); err != nil {
		return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
	}
	if opp.OpportunityName == "" {
		return AppErrorResponse(c, apperr.MissingField("opportunityName"))
	}
	created, err := h.crm.CreateOpportunity(c.Context(), &opp)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return CreatedResponse(c, created)
}

// GetOpportunity returns one stored opportunity.
func (h *CRMHandler) GetOpportunity(c *fiber.Ctx) error {
	id, err := urlParam(c, "id")
	if err != nil {
		return AppErrorResponse(c, err)
	}
	opp, err := h.crm.GetOpportunity(c.Context(), id)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, opp)
}

type deduceAccountRequest struct {
	From *domain.Recipient `json:"from"`
}

// DeduceAccount derives account name and key contact from a sender address.
func (h *CRMHandler) DeduceAccount(c *fiber.Ctx) error {
	var req deduceAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return AppErrorResponse(c, apperr.ValidationFailed("body", "invalid request body"))
	}
	if req.From == nil {
		return AppErrorResponse(c, apperr.MissingField("from"))
	}
	account, contact := crm.DeduceAccountInfo(req.From)
	return SuccessResponse(c, fiber.Map{
		"account_name": account,
		"key_contact":  contact,
	})
}
