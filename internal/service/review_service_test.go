package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eventdesk/internal/models"
	"eventdesk/internal/repository"
)

func TestReviewListNormalizesFilter(t *testing.T) {
	repo := noopRequestRepo()
	var seen repository.RequestFilter
	repo.listFn = func(_ context.Context, filter repository.RequestFilter) ([]*models.Request, error) {
		seen = filter
		return []*models.Request{{Title: "one"}}, nil
	}
	svc := NewReviewService(repo, noopParticipantRepo())

	requests, err := svc.List(context.Background(), ListInput{Status: " Pending ", Search: "  meetup ", Limit: 0, Offset: -3})
	require.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, models.RequestStatusPending, seen.Status)
	assert.Equal(t, "meetup", seen.Search)
	assert.Equal(t, DefaultListLimit, seen.Limit)
	assert.Equal(t, 0, seen.Offset)
}

func TestReviewListAllStatusMeansNoFilter(t *testing.T) {
	repo := noopRequestRepo()
	var seen repository.RequestFilter
	repo.listFn = func(_ context.Context, filter repository.RequestFilter) ([]*models.Request, error) {
		seen = filter
		return nil, nil
	}
	svc := NewReviewService(repo, noopParticipantRepo())

	_, err := svc.List(context.Background(), ListInput{Status: "all"})
	require.NoError(t, err)
	assert.Empty(t, seen.Status)
}

func TestReviewListRejectsUnknownStatus(t *testing.T) {
	svc := NewReviewService(noopRequestRepo(), noopParticipantRepo())

	_, err := svc.List(context.Background(), ListInput{Status: "archived"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestReviewUpdateStatusAllowsDecisionsOnly(t *testing.T) {
	repo := noopRequestRepo()
	var gotStatus models.RequestStatus
	var gotVersion uint
	repo.updateStatusFn = func(_ context.Context, id uint, status models.RequestStatus, expectedVersion uint) (*models.Request, error) {
		gotStatus = status
		gotVersion = expectedVersion
		return &models.Request{ID: id, Status: status}, nil
	}
	svc := NewReviewService(repo, noopParticipantRepo())

	request, err := svc.UpdateStatus(context.Background(), 3, "Approved", 2)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, request.Status)
	assert.Equal(t, models.RequestStatusApproved, gotStatus)
	assert.Equal(t, uint(2), gotVersion)

	for _, status := range []string{"pending", "done", ""} {
		_, err := svc.UpdateStatus(context.Background(), 3, status, 0)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}

func TestReviewUpdateStatusMapsErrors(t *testing.T) {
	repo := noopRequestRepo()
	repo.updateStatusFn = func(_ context.Context, _ uint, _ models.RequestStatus, _ uint) (*models.Request, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewReviewService(repo, noopParticipantRepo())

	_, err := svc.UpdateStatus(context.Background(), 99, "rejected", 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	repo.updateStatusFn = func(_ context.Context, _ uint, _ models.RequestStatus, _ uint) (*models.Request, error) {
		return nil, models.NewConflictError("request", 99)
	}
	_, err = svc.UpdateStatus(context.Background(), 99, "rejected", 7)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestReviewUpdateBuildsFieldMap(t *testing.T) {
	repo := noopRequestRepo()
	var gotFields map[string]any
	repo.updateFieldsFn = func(_ context.Context, id uint, fields map[string]any, _ uint) (*models.Request, error) {
		gotFields = fields
		return &models.Request{ID: id}, nil
	}
	svc := NewReviewService(repo, noopParticipantRepo())

	amount := 900.0
	_, err := svc.Update(context.Background(), 5, UpdateInput{
		Title:    "  New title ",
		Category: "Sports",
		DateTime: "2030-06-01T10:00:00Z",
		Amount:   &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", gotFields["title"])
	assert.Equal(t, "sports", gotFields["category"])
	assert.Contains(t, gotFields, "date_time")
	assert.Equal(t, 900.0, gotFields["amount"])
	assert.NotContains(t, gotFields, "description")
}

func TestReviewUpdateRejectsEmptyAndInvalidInput(t *testing.T) {
	svc := NewReviewService(noopRequestRepo(), noopParticipantRepo())

	var appErr *models.AppError
	_, err := svc.Update(context.Background(), 5, UpdateInput{})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	bad := -1.0
	_, err = svc.Update(context.Background(), 5, UpdateInput{Amount: &bad})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	_, err = svc.Update(context.Background(), 5, UpdateInput{Category: "underwater"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestReviewGetByIDIncludesRoster(t *testing.T) {
	requests := noopRequestRepo()
	requests.getByIDFn = func(_ context.Context, id uint) (*models.Request, error) {
		return &models.Request{ID: id, Title: "Meetup"}, nil
	}
	participants := noopParticipantRepo()
	participants.listByRequestFn = func(_ context.Context, requestID uint) ([]*models.Participant, error) {
		return []*models.Participant{{RequestID: requestID, FullName: "Ana"}}, nil
	}
	svc := NewReviewService(requests, participants)

	detail, err := svc.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint(4), detail.Request.ID)
	require.Len(t, detail.Participants, 1)
	assert.Equal(t, "Ana", detail.Participants[0].FullName)
}

func TestReviewGetByIDNotFound(t *testing.T) {
	requests := noopRequestRepo()
	requests.getByIDFn = func(_ context.Context, _ uint) (*models.Request, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewReviewService(requests, noopParticipantRepo())

	_, err := svc.GetByID(context.Background(), 404)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestReviewDeleteMapsConflict(t *testing.T) {
	repo := noopRequestRepo()
	repo.deleteFn = func(_ context.Context, _, _ uint) error {
		return models.NewConflictError("request", 8)
	}
	svc := NewReviewService(repo, noopParticipantRepo())

	err := svc.Delete(context.Background(), 8, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
