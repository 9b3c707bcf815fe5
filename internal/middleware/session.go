package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig controls the back office session cookie.
type SessionConfig struct {
	Secret            string
	AllowCrossSiteDev bool
	IsProduction      bool
	CookieDomain      string
}

const (
	SessionCookieName  = "estates.sid"
	SessionRedisPrefix = "session:"
	UserSessionsPrefix = "user_sessions:"
	sessionMaxAge      = 24 * time.Hour

	sessionDataLocal = "session_data"
	sessionIDLocal   = "session_id"
)

// SessionUser is stored in the session under "user".
type SessionUser struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// SignSessionID returns the cookie value for id: "s:<id>.<sig>", or "s:<id>"
// when no secret is configured.
func SignSessionID(id, secret string) string {
	if secret == "" {
		return "s:" + id
	}
	return "s:" + id + "." + sign(id, secret)
}

func sign(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}

// parseSessionCookie returns the session id, or "" when a secret is set and
// the signature does not match.
func parseSessionCookie(value, secret string) string {
	value = strings.TrimPrefix(value, "s:")
	id, sig, _ := strings.Cut(value, ".")
	if secret == "" {
		return id
	}
	if id == "" || !hmac.Equal([]byte(sig), []byte(sign(id, secret))) {
		return ""
	}
	return id
}

// Session loads the session named by the cookie from Redis before the
// handler runs and writes it back afterwards when a session id is set.
func Session(rdb *redis.Client, cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := parseSessionCookie(c.Cookies(SessionCookieName), cfg.Secret)

		var data map[string]interface{}
		if sessionID != "" {
			b, err := rdb.Get(c.UserContext(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			} else if err != redis.Nil {
				log.Warn().Err(err).Msg("session: redis read failed")
			}
		}
		if data == nil {
			data = make(map[string]interface{})
		}

		c.Locals(sessionDataLocal, data)
		c.Locals(userLocal, data["user"])
		c.Locals(sessionIDLocal, sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		sid, _ := c.Locals(sessionIDLocal).(string)
		updated, _ := c.Locals(sessionDataLocal).(map[string]interface{})
		if sid != "" && len(updated) > 0 {
			b, _ := json.Marshal(updated)
			if err := rdb.Set(c.UserContext(), SessionRedisPrefix+sid, b, sessionMaxAge).Err(); err != nil {
				log.Warn().Err(err).Msg("session: redis write failed")
			}
		}
		return nil
	}
}

// GetSessionID returns the current session ID.
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}

// SetSessionUser puts user in the session; call RegenerateSessionID first on login.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	data, _ := c.Locals(sessionDataLocal).(map[string]interface{})
	if data == nil {
		data = make(map[string]interface{})
	}
	data["user"] = map[string]interface{}{
		"user_id":  user.UserID,
		"fullname": user.Fullname,
		"email":    user.Email,
		"role":     user.Role,
	}
	c.Locals(sessionDataLocal, data)
	c.Locals(userLocal, data["user"])
}

// RegenerateSessionID issues a fresh session ID; see SignSessionID for the cookie value.
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals(sessionIDLocal, newID)
	return newID
}

// DestroySession clears the session in Locals; the caller clears cookie and Redis.
func DestroySession(c *fiber.Ctx) {
	c.Locals(sessionDataLocal, make(map[string]interface{}))
	c.Locals(userLocal, nil)
}

// SessionCookieConfig returns the cookie options used for set and clear.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	sameSite := "Lax"
	if cfg.AllowCrossSiteDev {
		sameSite = "None"
	}
	return fiber.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction || cfg.AllowCrossSiteDev,
		SameSite: sameSite,
	}
}
