package service

import (
	"context"

	"eventdesk/internal/models"
	"eventdesk/internal/repository"
)

// requestRepoStub is a stub for repository.RequestRepository.
type requestRepoStub struct {
	createFn        func(context.Context, *models.Request) error
	getByIDFn       func(context.Context, uint) (*models.Request, error)
	listFn          func(context.Context, repository.RequestFilter) ([]*models.Request, error)
	listByOwnerFn   func(context.Context, uint, string) ([]*models.Request, error)
	updateStatusFn  func(context.Context, uint, models.RequestStatus, uint) (*models.Request, error)
	updateFieldsFn  func(context.Context, uint, map[string]any, uint) (*models.Request, error)
	deleteFn        func(context.Context, uint, uint) error
	countByStatusFn func(context.Context) (*models.RequestStats, error)
}

func (s *requestRepoStub) Create(ctx context.Context, request *models.Request) error {
	return s.createFn(ctx, request)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) List(ctx context.Context, filter repository.RequestFilter) ([]*models.Request, error) {
	return s.listFn(ctx, filter)
}
func (s *requestRepoStub) ListByOwner(ctx context.Context, ownerID uint, search string) ([]*models.Request, error) {
	return s.listByOwnerFn(ctx, ownerID, search)
}
func (s *requestRepoStub) UpdateStatus(ctx context.Context, id uint, status models.RequestStatus, expectedVersion uint) (*models.Request, error) {
	return s.updateStatusFn(ctx, id, status, expectedVersion)
}
func (s *requestRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]any, expectedVersion uint) (*models.Request, error) {
	return s.updateFieldsFn(ctx, id, fields, expectedVersion)
}
func (s *requestRepoStub) Delete(ctx context.Context, id uint, expectedVersion uint) error {
	return s.deleteFn(ctx, id, expectedVersion)
}
func (s *requestRepoStub) CountByStatus(ctx context.Context) (*models.RequestStats, error) {
	return s.countByStatusFn(ctx)
}

func noopRequestRepo() *requestRepoStub {
	return &requestRepoStub{
		createFn:  func(_ context.Context, _ *models.Request) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Request, error) { return &models.Request{}, nil },
		listFn: func(_ context.Context, _ repository.RequestFilter) ([]*models.Request, error) {
			return nil, nil
		},
		listByOwnerFn: func(_ context.Context, _ uint, _ string) ([]*models.Request, error) { return nil, nil },
		updateStatusFn: func(_ context.Context, _ uint, _ models.RequestStatus, _ uint) (*models.Request, error) {
			return &models.Request{}, nil
		},
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]any, _ uint) (*models.Request, error) {
			return &models.Request{}, nil
		},
		deleteFn:        func(_ context.Context, _, _ uint) error { return nil },
		countByStatusFn: func(_ context.Context) (*models.RequestStats, error) { return &models.RequestStats{}, nil },
	}
}

// participantRepoStub is a stub for repository.ParticipantRepository.
type participantRepoStub struct {
	createFn         func(context.Context, *models.Participant) error
	listByRequestFn  func(context.Context, uint) ([]*models.Participant, error)
	countByRequestFn func(context.Context, uint) (int64, error)
}

func (s *participantRepoStub) Create(ctx context.Context, participant *models.Participant) error {
	return s.createFn(ctx, participant)
}
func (s *participantRepoStub) ListByRequest(ctx context.Context, requestID uint) ([]*models.Participant, error) {
	return s.listByRequestFn(ctx, requestID)
}
func (s *participantRepoStub) CountByRequest(ctx context.Context, requestID uint) (int64, error) {
	return s.countByRequestFn(ctx, requestID)
}

func noopParticipantRepo() *participantRepoStub {
	return &participantRepoStub{
		createFn:         func(_ context.Context, _ *models.Participant) error { return nil },
		listByRequestFn:  func(_ context.Context, _ uint) ([]*models.Participant, error) { return nil, nil },
		countByRequestFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// storeStub is a stub for storage.Store recording every Put.
type storeStub struct {
	putFn func(context.Context, string, []byte, string) (string, error)
	puts  []string
}

func (s *storeStub) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	s.puts = append(s.puts, key)
	if s.putFn != nil {
		return s.putFn(ctx, key, content, contentType)
	}
	return "https://cdn.example.test/" + key, nil
}

func (s *storeStub) PublicURL(key string) string {
	return "https://cdn.example.test/" + key
}
