package database

import (
	"context"
	"testing"

	"estates-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAutoMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable(&domain.AdminUser{}))
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := OpenRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer rdb.Close()
	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not-a-url")
	assert.Error(t, err)
}
