package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voyatalk/voyatalk/internal/domain"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists a message and returns it with its assigned id and
// creation time. Each write is independent and keyed by a fresh id, so
// concurrent writers are safe by construction.
func (r *GormMessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	stored := *msg
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	model := domain.MessageToModel(&stored)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindConversation returns all messages between two users in creation order.
func (r *GormMessageRepository) FindConversation(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	var models []domain.MessageModel
	err := r.db.WithContext(ctx).
		Where("sender IN ? AND recipient IN ?", []string{userA, userB}, []string{userA, userB}).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(models))
	for i := range models {
		messages = append(messages, *models[i].ToDomain())
	}
	return messages, nil
}
