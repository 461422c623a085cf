package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
)

// respondError maps pipeline and repository errors onto HTTP responses.
// AppErrors keep their code and status; anything else is a 500 with the
// fallback message, logged with the cause.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		body := fiber.Map{
			"error":   appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.Status(appErr.StatusCode).JSON(body)
	}

	logger.Error(fallback, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"message": fallback,
	})
}

// parseUUIDParam parses a UUID path parameter, responding 400 on failure
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": "Invalid " + name,
		})
	}
	return id, nil
}
