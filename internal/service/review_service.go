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

// DefaultListLimit caps dashboard listings when the caller does not ask for
// a page size.
const DefaultListLimit = 50

// ListInput selects a slice of the review dashboard. Status accepts a
// concrete status, "all" or empty for no filter. Search matches title,
// description and location case-insensitively.
type ListInput struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// UpdateInput holds the editable detail fields of a request. Zero-value
// fields are left untouched.
type UpdateInput struct {
	Title           string
	Description     string
	Location        string
	Category        string
	DateTime        string
	Amount          *float64
	ExpectedVersion uint
}

// RequestDetail is a request joined with its participant roster.
type RequestDetail struct {
	Request      *models.Request       `json:"request"`
	Participants []*models.Participant `json:"participants"`
}

// ReviewService implements the reviewer dashboard: listing, status decisions,
// edits and deletions.
type ReviewService struct {
	requests     repository.RequestRepository
	participants repository.ParticipantRepository
}

func NewReviewService(requests repository.RequestRepository, participants repository.ParticipantRepository) *ReviewService {
	return &ReviewService{requests: requests, participants: participants}
}

// List returns requests newest-first, filtered in a single pass.
func (s *ReviewService) List(ctx context.Context, in ListInput) ([]*models.Request, error) {
	filter := repository.RequestFilter{
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status != "" && status != "all" {
		parsed := models.RequestStatus(status)
		if !parsed.Valid() {
			return nil, models.NewValidationError("Unknown status filter")
		}
		filter.Status = parsed
	}

	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// ListByOwner returns the caller's own requests, optionally narrowed by a
// free-text search over title, status, category and id.
func (s *ReviewService) ListByOwner(ctx context.Context, ownerID uint, search string) ([]*models.Request, error) {
	requests, err := s.requests.ListByOwner(ctx, ownerID, strings.TrimSpace(search))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// Stats returns per-status totals for the dashboard header.
func (s *ReviewService) Stats(ctx context.Context) (*models.RequestStats, error) {
	stats, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}

// GetByID returns a request with its organizer profile and participant
// roster. The roster is included regardless of status so reviewers can
// inspect invites on pending requests too.
func (s *ReviewService) GetByID(ctx context.Context, id uint) (*RequestDetail, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}

	participants, err := s.participants.ListByRequest(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &RequestDetail{Request: request, Participants: participants}, nil
}

// UpdateStatus moves a request to approved or rejected. A non-zero
// expectedVersion makes the write conditional and surfaces a conflict when
// another reviewer got there first.
func (s *ReviewService) UpdateStatus(ctx context.Context, id uint, status string, expectedVersion uint) (*models.Request, error) {
	parsed := models.RequestStatus(strings.ToLower(strings.TrimSpace(status)))
	if parsed != models.RequestStatusApproved && parsed != models.RequestStatusRejected {
		return nil, models.NewValidationError("Status must be approved or rejected")
	}

	request, err := s.requests.UpdateStatus(ctx, id, parsed, expectedVersion)
	if err != nil {
		return nil, mapLookupError(err, id)
	}

	observability.StatusTransitions.WithLabelValues(string(parsed)).Inc()
	return request, nil
}

// Update edits the detail fields of a request without touching its status.
func (s *ReviewService) Update(ctx context.Context, id uint, in UpdateInput) (*models.Request, error) {
	fields := map[string]any{}

	if v := strings.TrimSpace(in.Title); v != "" {
		fields["title"] = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		fields["description"] = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		fields["location"] = v
	}
	if v := strings.TrimSpace(in.Category); v != "" {
		if err := validation.ValidateCategory(v); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["category"] = strings.ToLower(v)
	}
	if in.DateTime != "" {
		dateTime, err := validation.ParseDateTime(in.DateTime, "", "")
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["date_time"] = dateTime
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, models.NewValidationError("Amount must be positive")
		}
		fields["amount"] = *in.Amount
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("Nothing to update")
	}

	request, err := s.requests.UpdateFields(ctx, id, fields, in.ExpectedVersion)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return request, nil
}

// Delete removes a request and its participants.
func (s *ReviewService) Delete(ctx context.Context, id uint, expectedVersion uint) error {
	if err := s.requests.Delete(ctx, id, expectedVersion); err != nil {
		return mapLookupError(err, id)
	}
	observability.RequestDeletions.Inc()
	return nil
}

func mapLookupError(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("request", id)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewInternalError(err)
}
