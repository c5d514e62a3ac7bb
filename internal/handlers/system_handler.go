package handlers

import "github.com/gofiber/fiber/v2"

// APIVersion is reported by the info endpoint.
const APIVersion = "1.0.0"

// SystemHandler serves health and metadata endpoints.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// RegisterRoutes registers the system routes under the API group.
func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
	router.Get("/info", h.HandleInfo)
}

// HandleHealth reports that the service is up.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": "EmptyCup API is running",
	})
}

// HandleInfo describes the API.
func (h *SystemHandler) HandleInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "EmptyCup Designer Shortlist API",
		"version": APIVersion,
		"endpoints": fiber.Map{
			"health":          "/api/health",
			"designers":       "/api/designers",
			"designer_detail": "/api/designers/{id}",
			"shortlist":       "/api/designers/{id}/shortlist",
			"report":          "/api/designers/{id}/report",
		},
		"admin_interface": "/",
		"documentation":   "See README.md for full API documentation",
	})
}
