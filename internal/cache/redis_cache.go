package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyatalk/voyatalk/internal/config"
	"github.com/voyatalk/voyatalk/internal/domain"
)

// RedisConversationCache implements ConversationCache on Redis.
type RedisConversationCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisConversationCache connects to Redis and returns a cache.
func NewRedisConversationCache(cfg config.RedisConfig) (*RedisConversationCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisConversationCache{
		client: client,
		prefix: cfg.HistoryPrefix,
		ttl:    cfg.HistoryTTL,
	}, nil
}

// buildKey produces one key per unordered user pair.
func (c *RedisConversationCache) buildKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("%s:%s:%s", c.prefix, userA, userB)
}

func (c *RedisConversationCache) Get(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	data, err := c.client.Get(ctx, c.buildKey(userA, userB)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return messages, nil
}

func (c *RedisConversationCache) Set(ctx context.Context, userA, userB string, messages []domain.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(userA, userB), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *RedisConversationCache) Invalidate(ctx context.Context, userA, userB string) error {
	return c.client.Del(ctx, c.buildKey(userA, userB)).Err()
}

func (c *RedisConversationCache) Close() error {
	return c.client.Close()
}
