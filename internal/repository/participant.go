package repository

import (
	"context"

	"eventdesk/internal/models"

	"gorm.io/gorm"
)

// ParticipantRepository defines the interface for participant data operations.
// Participants are insert/list only; removal happens solely via the parent
// request's cascade delete.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	ListByRequest(ctx context.Context, requestID uint) ([]*models.Participant, error)
	CountByRequest(ctx context.Context, requestID uint) (int64, error)
}

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(ctx context.Context, participant *models.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *participantRepository) ListByRequest(ctx context.Context, requestID uint) ([]*models.Participant, error) {
	var participants []*models.Participant
	err := r.db.WithContext(ctx).
		Preload("Inviter").
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&participants).Error
	return participants, err
}

func (r *participantRepository) CountByRequest(ctx context.Context, requestID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Participant{}).
		Where("request_id = ?", requestID).
		Count(&count).Error
	return count, err
}
