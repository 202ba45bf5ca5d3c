// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"
	"time"

	"eventdesk/internal/cache"
	"eventdesk/internal/models"

	"gorm.io/gorm"
)

// RequestFilter narrows List results. A zero Status means all statuses;
// Search matches title, description and location case-insensitively.
type RequestFilter struct {
	Status models.RequestStatus
	Search string
	Limit  int
	Offset int
}

// RequestRepository defines the interface for request data operations
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]*models.Request, error)
	ListByOwner(ctx context.Context, ownerID uint, search string) ([]*models.Request, error)
	UpdateStatus(ctx context.Context, id uint, status models.RequestStatus, expectedVersion uint) (*models.Request, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any, expectedVersion uint) (*models.Request, error)
	Delete(ctx context.Context, id uint, expectedVersion uint) error
	CountByStatus(ctx context.Context) (*models.RequestStats, error)
}

// requestRepository implements RequestRepository
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	err := r.db.WithContext(ctx).Create(request).Error
	if err == nil {
		cache.Invalidate(ctx, cache.StatsKey)
	}
	return err
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	err := cache.Aside(ctx, cache.RequestKey(id), &request, cache.RequestTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Profile").
			First(&request, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]*models.Request, error) {
	var requests []*models.Request

	query := r.db.WithContext(ctx).
		Preload("Profile").
		Order("created_at DESC")

	if filter.Status.Valid() {
		query = query.Where("status = ?", filter.Status)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Find(&requests).Error
	return requests, err
}

func (r *requestRepository) ListByOwner(ctx context.Context, ownerID uint, search string) ([]*models.Request, error) {
	var requests []*models.Request

	query := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC")

	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(status) LIKE ? OR LOWER(category) LIKE ? OR CAST(id AS TEXT) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	err := query.Find(&requests).Error
	return requests, err
}

// UpdateStatus sets the status, refreshes updated_at and bumps the version.
// With expectedVersion > 0 the update is conditional; a zero value keeps the
// original last-write-wins behavior.
func (r *requestRepository) UpdateStatus(ctx context.Context, id uint, status models.RequestStatus, expectedVersion uint) (*models.Request, error) {
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
		"version":    gorm.Expr("version + 1"),
	}

	query := r.db.WithContext(ctx).Model(&models.Request{}).Where("id = ?", id)
	if expectedVersion > 0 {
		query = query.Where("version = ?", expectedVersion)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, missOrConflict(ctx, r.db, id)
	}

	cache.InvalidateRequest(ctx, id)

	var updated models.Request
	if err := r.db.WithContext(ctx).Preload("Profile").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *requestRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any, expectedVersion uint) (*models.Request, error) {
	fields["updated_at"] = time.Now()
	fields["version"] = gorm.Expr("version + 1")

	query := r.db.WithContext(ctx).Model(&models.Request{}).Where("id = ?", id)
	if expectedVersion > 0 {
		query = query.Where("version = ?", expectedVersion)
	}

	result := query.Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, missOrConflict(ctx, r.db, id)
	}

	cache.InvalidateRequest(ctx, id)

	var updated models.Request
	if err := r.db.WithContext(ctx).Preload("Profile").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the request and cascade-deletes its participants in one
// transaction. Deleting an absent id returns gorm.ErrRecordNotFound.
func (r *requestRepository) Delete(ctx context.Context, id uint, expectedVersion uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ?", id)
		if expectedVersion > 0 {
			query = query.Where("version = ?", expectedVersion)
		}

		result := query.Delete(&models.Request{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return missOrConflict(ctx, tx, id)
		}

		return tx.Where("request_id = ?", id).Delete(&models.Participant{}).Error
	})
	if err == nil {
		cache.InvalidateRequest(ctx, id)
	}
	return err
}

// missOrConflict distinguishes a stale version from a missing row after an
// update matched nothing. It probes on the handle the caller was mutating
// with so the check stays inside an enclosing transaction.
func missOrConflict(ctx context.Context, db *gorm.DB, id uint) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Request{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("request", id)
	}
	return gorm.ErrRecordNotFound
}

func (r *requestRepository) CountByStatus(ctx context.Context) (*models.RequestStats, error) {
	var stats models.RequestStats
	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		type row struct {
			Status models.RequestStatus
			N      int64
		}
		var rows []row
		if err := r.db.WithContext(ctx).Model(&models.Request{}).
			Select("status, COUNT(*) AS n").
			Group("status").
			Scan(&rows).Error; err != nil {
			return err
		}

		for _, rw := range rows {
			stats.Total += rw.N
			switch rw.Status.OrPending() {
			case models.RequestStatusPending:
				stats.Pending += rw.N
			case models.RequestStatusApproved:
				stats.Approved += rw.N
			case models.RequestStatusRejected:
				stats.Rejected += rw.N
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
