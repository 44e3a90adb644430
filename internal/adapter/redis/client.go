package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"skillink/internal/config"
)

const pingTimeout = 2 * time.Second

func NewClient(ctx context.Context, conf *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
