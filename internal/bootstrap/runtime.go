// Package bootstrap wires the runtime dependencies (database, Redis,
// development fixtures) before the HTTP layer starts.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"eventdesk/internal/cache"
	"eventdesk/internal/config"
	"eventdesk/internal/database"
	"eventdesk/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and applies the optional
// development admin bootstrap. Redis may come back nil when unreachable; the
// cache layer degrades to no-ops in that case.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	return db, r, nil
}

// ensureDevAdmin creates or repairs the development admin profile. Profiles
// normally mirror the external identity provider, so this only runs in
// development with DEV_BOOTSTRAP_ADMIN enabled.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@eventdesk.local"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.Profile
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.Profile{
				FirstName: "Dev",
				LastName:  "Admin",
				Email:     email,
				Role:      models.ProfileRoleAdmin,
				Password:  string(hashedPassword),
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.Profile{}).
				Where("id = ?", admin.ID).
				Updates(map[string]any{
					"role":     models.ProfileRoleAdmin,
					"password": string(hashedPassword),
				}).Error
		}
	}); err != nil {
		return err
	}

	log.Printf("development admin profile ready: %s", email)
	return nil
}
