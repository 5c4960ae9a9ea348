package events

import (
	"context"

	"github.com/voyatalk/voyatalk/internal/domain"
)

// Publisher pushes persisted messages to the archive topic for downstream
// consumers (analytics, search indexing). Publishing is best-effort and
// happens only after the durable store succeeds; delivery to live
// connections never depends on it.
type Publisher interface {
	PublishMessage(ctx context.Context, msg *domain.Message) error
	Close() error
}

// NoopPublisher satisfies Publisher when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishMessage(ctx context.Context, msg *domain.Message) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
