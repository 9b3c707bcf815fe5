//go:build integration

package health

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: REDIS_URL=redis://localhost:6379 go test -tags=integration ./internal/health/...
func TestCollectHealth_RealRedisWithoutEstatesAPI(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	result := CollectHealth(ctx, rdb, nil, fakeProbe{configured: false})
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.NotNil(t, result.Dependencies["redis"].PingMs)
	assert.Equal(t, "disabled", result.Dependencies["database"].Status)
	assert.Equal(t, "unconfigured", result.Dependencies["estatesApi"].Status)
	assert.Nil(t, result.Dependencies["estatesApi"].PingMs)
	// the embedded fallback keeps the site up without the remote API
	assert.Equal(t, "ok", result.Status)

	result = CollectHealth(ctx, rdb, nil, fakeProbe{configured: true})
	assert.Equal(t, "reachable", result.Dependencies["estatesApi"].Status)
	assert.Equal(t, "ok", result.Status)
}
