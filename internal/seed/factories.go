// Package seed provides helpers to create demo data for development and
// testing. Never run against a production database.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"eventdesk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var seedCategories = []string{
	"tech", "education", "entertainment", "business", "health", "sports", "social", "other",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateProfile persists a fake user profile.
func (f *Factory) CreateProfile(role models.ProfileRole) (*models.Profile, error) {
	firstName := gofakeit.FirstName()
	lastName := gofakeit.LastName()
	profile := &models.Profile{
		FirstName: firstName,
		LastName:  lastName,
		Email: strings.ToLower(fmt.Sprintf("%s.%s.%s@example.com",
			firstName, lastName, gofakeit.LetterN(4))),
		Phone:     gofakeit.Phone(),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:      role,
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildRequest constructs a request without persisting it.
func (f *Factory) BuildRequest(owner *models.Profile, kind models.RequestKind) *models.Request {
	request := &models.Request{
		Kind:        kind,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Location:    fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City()),
		Category:    seedCategories[f.rand.Intn(len(seedCategories))],
		DateTime:    time.Now().Add(time.Duration(1+f.rand.Intn(60)) * 24 * time.Hour),
		Status:      models.RequestStatusPending,
		UserID:      owner.ID,
		Version:     1,
	}

	// Spread submissions over the past weeks so dashboards look lived-in.
	request.CreatedAt = time.Now().Add(-time.Duration(f.rand.Intn(30*24)) * time.Hour)

	if kind == models.RequestKindEvent {
		url := fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID())
		request.ImageURL = &url
	} else {
		amount := float64(f.rand.Intn(9000)+500) + 0.99
		request.Amount = &amount
		url := fmt.Sprintf("https://example.com/documents/%s.pdf", gofakeit.UUID())
		request.ImageURL = &url
	}
	return request
}

// CreateRequestsBatch persists multiple requests in a single DB call.
func (f *Factory) CreateRequestsBatch(requests []*models.Request) error {
	if len(requests) == 0 {
		return nil
	}
	return f.db.Create(&requests).Error
}

// CreateParticipant persists a fake participant on the given request.
func (f *Factory) CreateParticipant(request *models.Request) (*models.Participant, error) {
	participant := &models.Participant{
		RequestID: request.ID,
		FullName:  gofakeit.Name(),
		Email:     strings.ToLower(gofakeit.Email()),
		Phone:     gofakeit.Phone(),
		InvitedBy: request.UserID,
	}
	if err := f.db.Create(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}
