package repository

import (
	"context"
	"errors"

	"github.com/voyatalk/voyatalk/internal/domain"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// ListAll returns the full user directory, consumed by contact lists.
	ListAll(ctx context.Context) ([]domain.DirectoryEntry, error)
}

// MessageRepository defines the interface for message persistence. Messages
// are append-only: Create assigns the id and creation time, and nothing
// mutates a record afterwards.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// FindConversation returns every message exchanged between the two
	// users, in creation order.
	FindConversation(ctx context.Context, userA, userB string) ([]domain.Message, error)
}

// BookingRepository defines the interface for flight booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.FlightBooking) (*domain.FlightBooking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.FlightBooking, error)
}
