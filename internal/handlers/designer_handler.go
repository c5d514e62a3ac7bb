package handlers

import (
	"fmt"

	"emptycup/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DesignerHandler handles HTTP requests for designers.
type DesignerHandler struct {
	service *services.DesignerService
	logger  *zap.Logger
}

// NewDesignerHandler creates a new DesignerHandler.
func NewDesignerHandler(service *services.DesignerService, logger *zap.Logger) *DesignerHandler {
	return &DesignerHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the designer routes with the Fiber app.
func (h *DesignerHandler) RegisterRoutes(router fiber.Router) {
	designerRoutes := router.Group("/designers")
	designerRoutes.Get("/", h.HandleGetDesigners)
	designerRoutes.Post("/", h.HandleCreateDesigner)
	designerRoutes.Get("/:id", h.HandleGetDesignerByID)
	designerRoutes.Delete("/:id", h.HandleDeleteDesigner)
}

// HandleGetDesigners lists every designer, most experienced first.
func (h *DesignerHandler) HandleGetDesigners(c *fiber.Ctx) error {
	designers, err := h.service.GetAllDesigners(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch designers")
	}
	return c.JSON(designers)
}

// HandleGetDesignerByID returns a single designer.
func (h *DesignerHandler) HandleGetDesignerByID(c *fiber.Ctx) error {
	id, ok := designerID(c)
	if !ok {
		return designerNotFound(c)
	}
	designer, err := h.service.GetDesignerByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch designer")
	}
	return c.JSON(designer)
}

// HandleCreateDesigner validates and stores a designer sent as JSON.
func (h *DesignerHandler) HandleCreateDesigner(c *fiber.Ctx) error {
	var record map[string]interface{}
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	designer, err := h.service.CreateDesigner(c.UserContext(), record)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to add designer")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Designer added successfully",
		"designer_id": designer.ID,
	})
}

// HandleDeleteDesigner removes a designer with its shortlists and reports.
func (h *DesignerHandler) HandleDeleteDesigner(c *fiber.Ctx) error {
	id, ok := designerID(c)
	if !ok {
		return designerNotFound(c)
	}
	if err := h.service.DeleteDesigner(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete designer")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Designer %d and all related records deleted successfully", id),
	})
}
