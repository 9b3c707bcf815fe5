package health

import (
	"encoding/json"
	"strconv"
	"time"

	"estates-backend/internal/middleware"
	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const serviceName = "estates-backend"

// Handlers serves /health/*.
type Handlers struct {
	Rdb            *redis.Client
	DB             DBPinger
	API            APIProbe
	HealthAdminKey string
}

// JSON returns service status, runtime, traffic and dependencies.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := CollectHealth(c.UserContext(), h.Rdb, h.DB, h.API)
	return c.JSON(fiber.Map{
		"service":      serviceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the most recent server errors, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := h.Rdb.LRange(c.UserContext(), middleware.KeyErrorLog, 0, 49).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil && m != nil {
			out = append(out, m)
		}
	}
	return c.JSON(out)
}

// Reset clears the traffic counters. Requires ?key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis not configured", fiber.StatusServiceUnavailable, nil)
	}
	ctx := c.UserContext()
	keys := []string{middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime, middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq, middleware.KeyErrorLog}
	if err := h.Rdb.Del(ctx, keys...).Err(); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	if err := h.Rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err(); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}
