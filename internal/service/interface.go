package service

import (
	"context"

	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/internal/hub"
)

// RelayService drives the per-connection lifecycle: admit and announce on
// connect, dispatch each inbound frame, evict and re-announce on
// disconnect.
type RelayService interface {
	HandleConnect(ctx context.Context, c *hub.Client)
	HandleFrame(ctx context.Context, c *hub.Client, raw []byte)
	HandleDisconnect(ctx context.Context, c *hub.Client)
}

// UserService covers registration, login, and the user directory.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, string, error)
	Directory(ctx context.Context) ([]domain.DirectoryEntry, error)
}

// HistoryService serves conversation history and booking listings.
type HistoryService interface {
	Conversation(ctx context.Context, userID, otherID string) ([]domain.Message, error)
	Bookings(ctx context.Context, userID string) ([]domain.FlightBooking, error)
}
