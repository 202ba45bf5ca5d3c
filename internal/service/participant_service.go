package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"eventdesk/internal/models"
	"eventdesk/internal/observability"
	"eventdesk/internal/repository"
	"eventdesk/internal/validation"
)

// InviteInput holds one participant invite.
type InviteInput struct {
	FullName string
	Email    string
	Phone    string
}

// ParticipantService manages the participant roster attached to a request.
type ParticipantService struct {
	participants repository.ParticipantRepository
	requests     repository.RequestRepository
}

func NewParticipantService(participants repository.ParticipantRepository, requests repository.RequestRepository) *ParticipantService {
	return &ParticipantService{participants: participants, requests: requests}
}

// Invite adds a participant to an existing request. Duplicate invites are
// allowed; the roster is a log of who was invited, not a unique set.
func (s *ParticipantService) Invite(ctx context.Context, requestID uint, invitedBy uint, in InviteInput) (*models.Participant, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, models.NewValidationError("Full name is required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, models.NewValidationError("Phone is required")
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("request", requestID)
		}
		return nil, models.NewInternalError(err)
	}

	participant := &models.Participant{
		RequestID: requestID,
		FullName:  strings.TrimSpace(in.FullName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		InvitedBy: invitedBy,
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.ParticipantInvites.Inc()
	return participant, nil
}

// List returns the roster for a request, newest invite first.
func (s *ParticipantService) List(ctx context.Context, requestID uint) ([]*models.Participant, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("request", requestID)
		}
		return nil, models.NewInternalError(err)
	}

	participants, err := s.participants.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return participants, nil
}
