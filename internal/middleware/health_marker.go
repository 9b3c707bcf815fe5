package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys for the traffic counters read by the health endpoints.
const (
	KeyReqTotal  = "health:estates:req_total"
	KeyReqErrors = "health:estates:req_errors"
	KeyResTime   = "health:estates:res_time_total"
	KeyResCount  = "health:estates:res_count"
	KeyStartTime = "health:estates:start_time"
	KeyLastReq   = "health:estates:last_request"
	KeyErrorLog  = "health:estates:error_log"

	errorLogSize = 50
)

// HealthMarker records request counters in Redis, skipping / and /health*.
// Server errors are also pushed to a capped error log.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		ctx := c.UserContext()
		lastReq, _ := json.Marshal(map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		pipe := rdb.Pipeline()
		pipe.Set(ctx, KeyLastReq, lastReq, 0)
		pipe.Incr(ctx, KeyReqTotal)
		_, _ = pipe.Exec(ctx)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil && status < fiber.StatusInternalServerError {
			status = fiber.StatusInternalServerError
		}
		pipe = rdb.Pipeline()
		pipe.Incr(ctx, KeyResCount)
		pipe.IncrByFloat(ctx, KeyResTime, float64(time.Since(start).Milliseconds()))
		if status >= fiber.StatusInternalServerError {
			msg := "Internal Server Error"
			if err != nil {
				msg = err.Error()
			}
			entry, _ := json.Marshal(map[string]interface{}{
				"time":    time.Now(),
				"path":    c.OriginalURL(),
				"method":  c.Method(),
				"status":  status,
				"message": msg,
			})
			pipe.Incr(ctx, KeyReqErrors)
			pipe.LPush(ctx, KeyErrorLog, entry)
			pipe.LTrim(ctx, KeyErrorLog, 0, errorLogSize-1)
		}
		_, _ = pipe.Exec(ctx)
		return err
	}
}
