package service

import (
	"context"
	"errors"

	"github.com/voyatalk/voyatalk/internal/cache"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/internal/repository"
	"github.com/voyatalk/voyatalk/pkg/log"
)

type historyService struct {
	messages repository.MessageRepository
	bookings repository.BookingRepository
	history  cache.ConversationCache
}

// NewHistoryService creates the history service.
func NewHistoryService(
	messages repository.MessageRepository,
	bookings repository.BookingRepository,
	history cache.ConversationCache,
) HistoryService {
	return &historyService{
		messages: messages,
		bookings: bookings,
		history:  history,
	}
}

// Conversation returns the full message history between two users,
// read-through cached. Cache failures fall back to the store.
func (s *historyService) Conversation(ctx context.Context, userID, otherID string) ([]domain.Message, error) {
	cached, err := s.history.Get(ctx, userID, otherID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("history cache read failed")
	}

	messages, err := s.messages.FindConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	if err := s.history.Set(ctx, userID, otherID, messages); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("history cache write failed")
	}

	return messages, nil
}

func (s *historyService) Bookings(ctx context.Context, userID string) ([]domain.FlightBooking, error) {
	return s.bookings.ListByUser(ctx, userID)
}
