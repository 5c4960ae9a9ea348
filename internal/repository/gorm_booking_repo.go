package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voyatalk/voyatalk/internal/domain"
)

// GormBookingRepository implements BookingRepository using GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM-based booking repository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create persists a booking and returns it with its assigned id.
func (r *GormBookingRepository) Create(ctx context.Context, booking *domain.FlightBooking) (*domain.FlightBooking, error) {
	stored := *booking
	stored.ID = uuid.New().String()

	model := domain.BookingToModel(&stored)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByUser returns the bookings belonging to a user, newest first.
func (r *GormBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.FlightBooking, error) {
	var models []domain.FlightBookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	bookings := make([]domain.FlightBooking, 0, len(models))
	for i := range models {
		bookings = append(bookings, *models[i].ToDomain())
	}
	return bookings, nil
}
