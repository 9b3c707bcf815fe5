package auth

import (
	"errors"

	authsvc "estates-backend/internal/auth"
	"estates-backend/internal/middleware"
	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for the back office auth endpoints.
type Handlers struct {
	UserFinder authsvc.UserFinder
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

// Login POST /api/v1/auth/login: verify credentials, open a session, set the cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil || h.Rdb == nil {
		return response.Error(c, "Login is not available", fiber.StatusServiceUnavailable, nil)
	}
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, authsvc.ErrEmailPasswordRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, authsvc.ErrInvalidEmail), errors.Is(err, authsvc.ErrIncorrectPassword):
		log.Warn().Str("path", c.Path()).Msg("auth/login: rejected credentials")
		return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
	default:
		log.Error().Err(err).Msg("auth/login: lookup failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	shape := authsvc.ShapeFor(user)
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   shape.UserID,
		Fullname: shape.Fullname,
		Email:    shape.Email,
		Role:     shape.Role,
	})

	if err := h.Rdb.SAdd(c.UserContext(), middleware.UserSessionsPrefix+shape.UserID, sessionID).Err(); err != nil {
		log.Error().Err(err).Msg("auth/login: session tracking failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = middleware.SignSessionID(sessionID, h.Config.Secret)
	c.Cookie(&cookie)

	log.Info().Str("user_id", shape.UserID).Msg("auth/login: success")
	return response.Success(c, "Login successful", fiber.Map{"user": shape}, nil)
}

// Me GET /api/v1/auth/me: the current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	sessionUser := middleware.GetUser(c)
	if middleware.GetSessionID(c) == "" {
		log.Debug().Bool("cookie_present", c.Cookies(middleware.SessionCookieName) != "").
			Msg("auth/me: no session id")
	}
	user, err := authsvc.VerifyUser(sessionUser)
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout: drop the session in Redis and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := c.UserContext()

	if h.Rdb != nil && sessionID != "" {
		if user, err := authsvc.VerifyUser(middleware.GetUser(c)); err == nil {
			_ = h.Rdb.SRem(ctx, middleware.UserSessionsPrefix+user.UserID, sessionID).Err()
		}
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}
