package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	apiKeyRateLimit  = 300
	apiKeyRateWindow = time.Minute
)

// keyLimiter is a fixed-window counter in redis, shared across replicas.
// It fails open: a broken redis must not take the API down with it.
type keyLimiter struct {
	rdb *goredis.Client
	log *zap.Logger
}

func newKeyLimiter(rdb *goredis.Client, log *zap.Logger) *keyLimiter {
	return &keyLimiter{rdb: rdb, log: log.Named("ratelimit")}
}

func (l *keyLimiter) Allow(ctx context.Context, rawKey string) bool {
	sum := sha256.Sum256([]byte(rawKey))
	key := "ratelimit:apikey:" + hex.EncodeToString(sum[:8])

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn("rate limit check failed", zap.Error(err))
		return true
	}
	if count == 1 {
		l.rdb.Expire(ctx, key, apiKeyRateWindow)
	}
	return count <= apiKeyRateLimit
}
