// Package bootstrap wires the long-lived runtime dependencies for the commands.
package bootstrap

import (
	"fmt"

	"simplepost/internal/cache"
	"simplepost/internal/config"
	"simplepost/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipSchema leaves the schema untouched (cmd/migrate manages it itself).
	SkipSchema bool
}

// InitRuntime connects to the database for the active mode and, when
// REDIS_URL is set, to Redis. The Redis client is nil when the cache is
// disabled or unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: !opts.SkipSchema})
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.InitRedis(cfg.RedisURL)

	return db, r, nil
}
