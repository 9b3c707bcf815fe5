package accounts

import (
	"errors"

	accountssvc "estates-backend/internal/application/accounts"
	authsvc "estates-backend/internal/auth"
	"estates-backend/internal/domain"
	"estates-backend/internal/middleware"
	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves back office account management (admins only).
type Handlers struct {
	Service *accountssvc.Service
}

// UpdateRoleRequest body: role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// List GET /api/v1/admin/users
func (h *Handlers) List(c *fiber.Ctx) error {
	if h.Service == nil || h.Service.DB == nil {
		return unavailable(c)
	}
	users, err := h.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		out = append(out, safeUser(&users[i]))
	}
	return response.Success(c, "Users fetched successfully", fiber.Map{"users": out}, nil)
}

// Create POST /api/v1/admin/users
func (h *Handlers) Create(c *fiber.Ctx) error {
	if h.Service == nil || h.Service.DB == nil {
		return unavailable(c)
	}
	var req accountssvc.CreateInput
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" || req.Fullname == "" {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.Create(c.UserContext(), req)
	if err != nil {
		return mapError(c, err)
	}
	return response.SuccessCreated(c, "User created successfully", fiber.Map{"user": safeUser(u)}, nil)
}

// UpdateRole PATCH /api/v1/admin/users/:id/role
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	if h.Service == nil || h.Service.DB == nil {
		return unavailable(c)
	}
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return response.Error(c, "role is required", fiber.StatusBadRequest, nil)
	}
	actor, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	u, err := h.Service.UpdateRole(c.UserContext(), actor, c.Params("id"), req.Role)
	if err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "User role updated successfully", fiber.Map{"user": safeUser(u)}, nil)
}

// Remove DELETE /api/v1/admin/users/:id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	if h.Service == nil || h.Service.DB == nil {
		return unavailable(c)
	}
	actor, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Service.Remove(c.UserContext(), actor, c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "User removed", nil, nil)
}

func unavailable(c *fiber.Ctx) error {
	return response.Error(c, "Account management is not available", fiber.StatusServiceUnavailable, nil)
}

func actorID(c *fiber.Ctx) (string, bool) {
	m, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return "", false
	}
	id, _ := m["user_id"].(string)
	return id, id != ""
}

func safeUser(u *domain.AdminUser) fiber.Map {
	return fiber.Map{
		"user_id":   u.UserID.String(),
		"fullname":  u.Fullname,
		"email":     u.Email,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

func mapError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, authsvc.ErrInvalidEmail), errors.Is(err, authsvc.ErrInvalidFullname),
		errors.Is(err, authsvc.ErrWeakPassword), errors.Is(err, authsvc.ErrInvalidRole),
		errors.Is(err, accountssvc.ErrInvalidUserID), errors.Is(err, accountssvc.ErrCannotModifyOwnRole),
		errors.Is(err, accountssvc.ErrCannotRemoveYourself), errors.Is(err, accountssvc.ErrMustKeepOneAdmin):
		status = fiber.StatusBadRequest
	case errors.Is(err, authsvc.ErrEmailTaken):
		status = fiber.StatusConflict
	case errors.Is(err, accountssvc.ErrUserNotFound):
		status = fiber.StatusNotFound
	default:
		return err
	}
	return response.Error(c, err.Error(), status, nil)
}
