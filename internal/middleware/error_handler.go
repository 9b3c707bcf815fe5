package middleware

import (
	"errors"

	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders any error escaping a handler in the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("unhandled error")
	}
	return response.Error(c, message, code, nil)
}
