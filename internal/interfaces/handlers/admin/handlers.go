package admin

import (
	"errors"

	estatessvc "estates-backend/internal/application/estates"
	"estates-backend/internal/infrastructure/estatesapi"
	estateshandler "estates-backend/internal/interfaces/handlers/estates"
	"estates-backend/internal/pkg/response"
	"estates-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers serves the back office listing table and CRUD.
type Handlers struct {
	Service *estatessvc.Service
}

// List GET /api/v1/admin/estates?q=&page=&pageSize=
func (h *Handlers) List(c *fiber.Ctx) error {
	res, err := h.Service.AdminList(c.UserContext(), c.Query("q"), c.QueryInt("page", 1), c.QueryInt("pageSize", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Estates fetched successfully", fiber.Map{
		"estates":    estatessvc.NewViews(res.Page.Items),
		"stats":      res.Stats,
		"pagination": estateshandler.NewPaginationView(res.Page, res.Links),
	}, response.Meta{}.WithWarning(res.Warning))
}

// Create POST /api/v1/admin/estates
func (h *Handlers) Create(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	l, err := h.Service.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return response.SuccessCreated(c, "Propiedad creada correctamente", estatessvc.NewView(l), nil)
}

// Update PUT /api/v1/admin/estates/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	l, err := h.Service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Propiedad actualizada correctamente", estatessvc.NewView(l), nil)
}

// Delete DELETE /api/v1/admin/estates/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Propiedad eliminada correctamente", fiber.Map{"id": c.Params("id")}, nil)
}

func parseInput(c *fiber.Ctx) (estatessvc.EstateInput, error) {
	var in estatessvc.EstateInput
	err := c.BodyParser(&in)
	return in, err
}

// fail maps service errors to responses. Upstream messages are passed
// through since the admin UI shows them verbatim.
func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	var fields validation.FieldErrors
	var apiErr *estatesapi.APIError
	switch {
	case errors.As(err, &fields):
		return response.ValidationFailed(c, fields)
	case errors.Is(err, estatessvc.ErrListingNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, estatesapi.ErrNotConfigured):
		return response.Error(c, "API no configurada", fiber.StatusServiceUnavailable, nil)
	case errors.Is(err, estatessvc.ErrAdminLoad):
		return response.Error(c, estatessvc.WarnAdminLoadFailed, fiber.StatusBadGateway, nil)
	case errors.As(err, &apiErr):
		return response.Error(c, apiErr.Message, fiber.StatusBadGateway, fiber.Map{"upstreamStatus": apiErr.StatusCode})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("admin estates: request failed")
		return response.Error(c, "Error al procesar la solicitud", fiber.StatusBadGateway, nil)
	}
}
