package handlers

import (
	"errors"

	"parlay-api/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// NewErrorHandler renders every error as models.ErrorResponse. Domain errors are
// mapped onto their status codes; fiber errors keep theirs.
func NewErrorHandler(logger *zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := models.StatusCode(err)
		title := models.Title(err)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			title = "Request failed"
		}

		event := logger.Warn()
		if code >= fiber.StatusInternalServerError {
			event = logger.Error()
		}
		event.Err(err).
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("request failed")

		return c.Status(code).JSON(models.ErrorResponse{
			Error:   title,
			Message: err.Error(),
			Code:    code,
		})
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
