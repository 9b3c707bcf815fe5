package contact

import (
	"errors"

	contactsvc "estates-backend/internal/application/contact"
	"estates-backend/internal/pkg/response"
	"estates-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *contactsvc.Service
}

// Send POST /api/v1/contact
func (h *Handlers) Send(c *fiber.Ctx) error {
	var msg contactsvc.Message
	if err := c.BodyParser(&msg); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	err := h.Service.Send(c.UserContext(), msg)
	var fields validation.FieldErrors
	switch {
	case err == nil:
		return response.Success(c, "Mensaje enviado correctamente", nil, nil)
	case errors.As(err, &fields):
		return response.ValidationFailed(c, fields)
	case errors.Is(err, contactsvc.ErrNotConfigured):
		return response.Error(c, "El formulario de contacto no está disponible", fiber.StatusServiceUnavailable, nil)
	default:
		log.Error().Err(err).Msg("contact: delivery failed")
		return response.Error(c, "No se pudo enviar el mensaje. Intenta de nuevo más tarde.", fiber.StatusBadGateway, nil)
	}
}
