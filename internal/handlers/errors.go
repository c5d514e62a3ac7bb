package handlers

import (
	"errors"
	"strconv"

	"emptycup/internal/repositories"
	"emptycup/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// respondError maps a service error to its HTTP status. Unexpected errors are
// logged and answered with internalMessage so backend details never reach the
// client.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, internalMessage string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, services.ErrReasonRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Reason is required"})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Designer not found"})
	}
	logger.Error(internalMessage, zap.String("path", utils.CopyString(c.Path())), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": internalMessage})
}

// designerID reads the :id route parameter.
func designerID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func designerNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Designer not found"})
}
