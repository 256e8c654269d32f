package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/alx_travel/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenBlacklist remembers revoked refresh tokens by jti until they expire.
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type GormBlacklist struct {
	db *gorm.DB
}

func NewGormBlacklist(db *gorm.DB) *GormBlacklist {
	return &GormBlacklist{db: db}
}

func (b *GormBlacklist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	row := models.BlacklistedToken{JTI: jti, ExpiresAt: expiresAt}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(&row).Error
}

func (b *GormBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	var row models.BlacklistedToken
	err := b.db.WithContext(ctx).Where("jti = ?", jti).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PurgeExpired deletes entries whose token can no longer be presented.
func (b *GormBlacklist) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := b.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	return res.RowsAffected, res.Error
}

// RedisBlacklist keeps one key per jti and lets Redis expire it.
type RedisBlacklist struct {
	client *redis.Client
	prefix string
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client, prefix: "blacklist:jti:"}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (b *RedisBlacklist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.prefix+jti, 1, ttl).Err()
}

func (b *RedisBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
