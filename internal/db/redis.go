package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/config"
)

const redisPingTimeout = 3 * time.Second

// NewRedis connects to redis when a URL is configured. It returns a nil
// client and no error when redis is disabled; callers fall back to
// in-process state.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*redis.Client, error) {
	if cfg.URL == "" {
		logger.Info().Msg("redis: no URL configured, using in-memory rate limiting")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info().Str("addr", opts.Addr).Msg("redis connected")
	return rdb, nil
}
