package accounts

import (
	"context"

	"estates-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DestroyUserSessions deletes every session opened by userID so a role
// change or removal takes effect on the next request.
func DestroyUserSessions(ctx context.Context, rdb *redis.Client, userID string) {
	if rdb == nil || userID == "" {
		return
	}
	key := middleware.UserSessionsPrefix + userID
	sessionIDs, err := rdb.SMembers(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("accounts: list sessions failed")
	}
	pipe := rdb.TxPipeline()
	for _, sid := range sessionIDs {
		pipe.Del(ctx, middleware.SessionRedisPrefix+sid)
	}
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("accounts: destroy sessions failed")
	}
}
