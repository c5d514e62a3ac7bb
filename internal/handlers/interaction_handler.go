package handlers

import (
	"emptycup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InteractionHandler handles shortlist and report requests.
type InteractionHandler struct {
	service  *services.InteractionService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(service *services.InteractionService, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the interaction routes with the Fiber app.
func (h *InteractionHandler) RegisterRoutes(router fiber.Router) {
	designerRoutes := router.Group("/designers")
	designerRoutes.Post("/:id/shortlist", h.HandleToggleShortlist)
	designerRoutes.Post("/:id/report", h.HandleReport)
}

// ShortlistRequest represents the request body for toggling a shortlist.
type ShortlistRequest struct {
	UserSession string `json:"user_session"`
}

// ReportRequest represents the request body for reporting a designer.
type ReportRequest struct {
	Reason      string `json:"reason" validate:"required"`
	Description string `json:"description"`
	UserSession string `json:"user_session"`
}

// HandleToggleShortlist adds the designer to, or removes it from, the
// caller's shortlist.
func (h *InteractionHandler) HandleToggleShortlist(c *fiber.Ctx) error {
	id, ok := designerID(c)
	if !ok {
		return designerNotFound(c)
	}
	var req ShortlistRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	shortlisted, err := h.service.ToggleShortlist(c.UserContext(), id, req.UserSession)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to toggle shortlist")
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"shortlisted": shortlisted,
		"designer_id": id,
	})
}

// HandleReport records a complaint about a designer.
func (h *InteractionHandler) HandleReport(c *fiber.Ctx) error {
	id, ok := designerID(c)
	if !ok {
		return designerNotFound(c)
	}
	var req ReportRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Reason is required"})
	}

	if err := h.service.ReportDesigner(c.UserContext(), id, req.Reason, req.Description, req.UserSession); err != nil {
		return respondError(c, h.logger, err, "Failed to submit report")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Report submitted successfully",
	})
}

// parseOptionalBody decodes the body when one was sent. An empty body leaves
// out untouched.
func parseOptionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}
