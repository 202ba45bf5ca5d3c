package seed

import (
	"fmt"
	"log"
	"math/rand"

	"eventdesk/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumRequests int
	ShouldClean bool
}

// Run populates the database with demo profiles, requests and participant
// rosters. Roughly two thirds of the requests get an approve/reject decision so
// every dashboard filter has rows to show.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumRequests <= 0 {
		opts.NumRequests = 40
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("clean database: %w", err)
		}
	}

	factory := NewFactory(db)

	profiles := make([]*models.Profile, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		role := models.ProfileRoleUser
		if i == 0 {
			role = models.ProfileRoleAdmin
		}
		profile, err := factory.CreateProfile(role)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	requests := make([]*models.Request, 0, opts.NumRequests)
	for i := 0; i < opts.NumRequests; i++ {
		owner := profiles[rand.Intn(len(profiles))]
		kind := models.RequestKindEvent
		if i%3 == 0 {
			kind = models.RequestKindLoan
		}
		requests = append(requests, factory.BuildRequest(owner, kind))
	}
	if err := factory.CreateRequestsBatch(requests); err != nil {
		return fmt.Errorf("create requests: %w", err)
	}

	decided := 0
	for _, request := range requests {
		switch rand.Intn(3) {
		case 0:
			request.Status = models.RequestStatusApproved
		case 1:
			request.Status = models.RequestStatusRejected
		default:
			continue
		}
		if err := db.Model(request).Updates(map[string]any{
			"status":  request.Status,
			"version": request.Version + 1,
		}).Error; err != nil {
			return fmt.Errorf("decide request %d: %w", request.ID, err)
		}
		decided++
	}

	participants := 0
	for _, request := range requests {
		if request.Kind != models.RequestKindEvent || request.Status != models.RequestStatusApproved {
			continue
		}
		for i := 0; i < rand.Intn(6); i++ {
			if _, err := factory.CreateParticipant(request); err != nil {
				return fmt.Errorf("create participant: %w", err)
			}
			participants++
		}
	}

	log.Printf("seeded %d profiles, %d requests (%d decided), %d participants",
		len(profiles), len(requests), decided, participants)
	return nil
}

func clean(db *gorm.DB) error {
	for _, model := range []any{
		&models.Participant{},
		&models.Request{},
		&models.Profile{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
