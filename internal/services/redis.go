package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dicoslang/backoffice/internal/models"
)

// ConnectRedis parses a redis:// URI, tunes the pool and pings the server.
func ConnectRedis(ctx context.Context, uri string) (*redis.Client, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("Redis connected: addr=%s db=%d", opt.Addr, opt.DB)
	return client, nil
}

// PickCache caches the word of the day.
type PickCache interface {
	Get(ctx context.Context, day string) (*models.WordOfTheDay, error)
	Set(ctx context.Context, pick *models.WordOfTheDay, ttl time.Duration) error
}

var errCacheMiss = errors.New("cache miss")

// RedisPickCache stores picks as JSON under wotd:<day>, word included.
type RedisPickCache struct {
	client *redis.Client
}

func NewRedisPickCache(client *redis.Client) *RedisPickCache {
	return &RedisPickCache{client: client}
}

func pickKey(day string) string { return "wotd:" + day }

func (c *RedisPickCache) Get(ctx context.Context, day string) (*models.WordOfTheDay, error) {
	raw, err := c.client.Get(ctx, pickKey(day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var pick models.WordOfTheDay
	if err := json.Unmarshal(raw, &pick); err != nil {
		return nil, err
	}
	return &pick, nil
}

func (c *RedisPickCache) Set(ctx context.Context, pick *models.WordOfTheDay, ttl time.Duration) error {
	raw, err := json.Marshal(pick)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pickKey(pick.ID), raw, ttl).Err()
}
