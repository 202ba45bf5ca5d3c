package repository

import (
	"context"
	"testing"
	"time"

	"eventdesk/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestProfileRepositoryGetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "role"}).
			AddRow(1, "Jane", "Doe", "jane@x.com", "admin")
		mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE email =`).
			WithArgs("jane@x.com", 1).
			WillReturnRows(rows)

		profile, err := repo.GetByEmail(ctx, "jane@x.com")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", profile.FullName())
		assert.True(t, profile.IsAdmin())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE email =`).
			WithArgs("ghost@x.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetByEmail(ctx, "ghost@x.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositorySQLite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := &models.Profile{
		FirstName: "Sam",
		LastName:  "Organizer",
		Email:     "sam@example.com",
		Phone:     "555-0000",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, profile))
	require.NotZero(t, profile.ID)

	fetched, err := repo.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", fetched.Email)
	assert.Equal(t, models.ProfileRoleUser, fetched.Role)
	assert.False(t, fetched.IsAdmin())
}
