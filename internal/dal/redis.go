package dal

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"

	"rapid-pay-api/internal/config"
)

// RedisClient backs the settings cache, carts and stock counters.
var RedisClient *redis.Client

func InitRedis() {
	c := config.C.Redis
	opts := &redis.Options{
		Addr:        c.Addr,
		Password:    c.Password,
		DB:          c.DB,
		DialTimeout: c.DialTimeout,
	}
	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	RedisClient = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), c.DialTimeout)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("[Redis] ping %s failed: %v", c.Addr, err)
	}
	log.Printf("[Redis] connected, addr=%s db=%d", c.Addr, c.DB)
}

func CloseRedis() {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Close(); err != nil {
		log.Printf("[Redis] close failed: %v", err)
	}
}
