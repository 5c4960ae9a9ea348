package cache

import (
	"context"
	"errors"

	"github.com/voyatalk/voyatalk/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// ConversationCache is a read-through cache in front of conversation
// history queries. Entries are keyed by the unordered user pair and
// invalidated whenever a new message in that conversation is persisted.
type ConversationCache interface {
	Get(ctx context.Context, userA, userB string) ([]domain.Message, error)
	Set(ctx context.Context, userA, userB string, messages []domain.Message) error
	Invalidate(ctx context.Context, userA, userB string) error
	Close() error
}

// NoopCache satisfies ConversationCache when no cache is configured.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Set(ctx context.Context, userA, userB string, messages []domain.Message) error {
	return nil
}

func (NoopCache) Invalidate(ctx context.Context, userA, userB string) error {
	return nil
}

func (NoopCache) Close() error {
	return nil
}
