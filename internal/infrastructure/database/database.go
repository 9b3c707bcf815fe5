package database

import (
	"context"
	"time"

	"estates-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the admin accounts database. PreferSimpleProtocol avoids 42P05
// ("prepared statement already exists") behind PgBouncer-style poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
}

// AutoMigrate creates the AdminUsers table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.AdminUser{})
}

// OpenRedis connects to REDIS_URL and checks the connection.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
