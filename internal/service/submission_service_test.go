package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdesk/internal/models"
)

func tinyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func futureDate() string {
	return time.Now().Add(48 * time.Hour).Format(time.RFC3339)
}

func validEventInput() SubmitInput {
	return SubmitInput{
		OwnerID:     7,
		Kind:        models.RequestKindEvent,
		Title:       "Tech Meetup",
		Description: "Monthly community meetup",
		Location:    "Main hall",
		Category:    "tech",
		DateTime:    futureDate(),
	}
}

func validLoanInput() SubmitInput {
	amount := 1500.0
	return SubmitInput{
		OwnerID:     7,
		Kind:        models.RequestKindLoan,
		Title:       "Projector purchase",
		Description: "Replacement for the broken unit",
		Location:    "Office",
		Category:    "business",
		Amount:      &amount,
		DateTime:    futureDate(),
		Attachment: &Attachment{
			Filename:    "quote.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF-1.4 supporting document"),
		},
	}
}

func TestSubmitEventWithBannerUploadsImageAndThumbnail(t *testing.T) {
	var created *models.Request
	repo := noopRequestRepo()
	repo.createFn = func(_ context.Context, r *models.Request) error {
		r.ID = 1
		created = r
		return nil
	}
	store := &storeStub{}
	svc := NewSubmissionService(repo, store)

	in := validEventInput()
	in.Attachment = &Attachment{Filename: "banner.png", ContentType: "image/png", Content: tinyPNG(t, 32, 32)}

	request, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, uint(1), request.Version)
	require.NotNil(t, request.ImageURL)
	assert.True(t, strings.HasPrefix(*request.ImageURL, "https://cdn.example.test/7/"))

	require.Len(t, store.puts, 2)
	assert.True(t, strings.HasSuffix(store.puts[0], ".png"))
	assert.True(t, strings.HasSuffix(store.puts[1], ".thumb.webp"))
}

func TestSubmitEventWithoutBanner(t *testing.T) {
	repo := noopRequestRepo()
	store := &storeStub{}
	svc := NewSubmissionService(repo, store)

	request, err := svc.Submit(context.Background(), validEventInput())
	require.NoError(t, err)
	assert.Nil(t, request.ImageURL)
	assert.Empty(t, store.puts)
}

func TestSubmitEventRejectsNonImageBanner(t *testing.T) {
	repo := noopRequestRepo()
	repo.createFn = func(_ context.Context, _ *models.Request) error {
		t.Fatal("create must not be called for a rejected attachment")
		return nil
	}
	store := &storeStub{}
	svc := NewSubmissionService(repo, store)

	in := validEventInput()
	in.Attachment = &Attachment{Filename: "notes.txt", ContentType: "image/png", Content: []byte("plain text pretending")}

	_, err := svc.Submit(context.Background(), in)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, store.puts)
}

func TestSubmitEventRejectsOversizedBanner(t *testing.T) {
	repo := noopRequestRepo()
	store := &storeStub{}
	svc := NewSubmissionService(repo, store)

	policy := EventPolicy()
	policy.MaxAttachmentBytes = 64
	svc.policies[models.RequestKindEvent] = policy

	in := validEventInput()
	in.Attachment = &Attachment{Filename: "banner.png", ContentType: "image/png", Content: tinyPNG(t, 64, 64)}

	_, err := svc.Submit(context.Background(), in)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, store.puts)
}

func TestSubmitLoanRequiresAmountAndDocument(t *testing.T) {
	svc := NewSubmissionService(noopRequestRepo(), &storeStub{})

	in := validLoanInput()
	in.Amount = nil
	_, err := svc.Submit(context.Background(), in)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	in = validLoanInput()
	in.Attachment = nil
	_, err = svc.Submit(context.Background(), in)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSubmitLoanAcceptsNonImageDocument(t *testing.T) {
	repo := noopRequestRepo()
	store := &storeStub{}
	svc := NewSubmissionService(repo, store)

	request, err := svc.Submit(context.Background(), validLoanInput())
	require.NoError(t, err)
	require.NotNil(t, request.ImageURL)
	// Documents get no thumbnail variant.
	assert.Len(t, store.puts, 1)
}

func TestSubmitAbortsOnUploadFailure(t *testing.T) {
	repo := noopRequestRepo()
	created := false
	repo.createFn = func(_ context.Context, _ *models.Request) error {
		created = true
		return nil
	}
	store := &storeStub{putFn: func(_ context.Context, _ string, _ []byte, _ string) (string, error) {
		return "", assert.AnError
	}}
	svc := NewSubmissionService(repo, store)

	_, err := svc.Submit(context.Background(), validLoanInput())
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPLOAD_ERROR", appErr.Code)
	assert.False(t, created, "no row may be inserted after a failed upload")
}

func TestSubmitValidation(t *testing.T) {
	svc := NewSubmissionService(noopRequestRepo(), &storeStub{})

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"missing title", func(in *SubmitInput) { in.Title = "  " }},
		{"missing description", func(in *SubmitInput) { in.Description = "" }},
		{"missing location", func(in *SubmitInput) { in.Location = "" }},
		{"unknown category", func(in *SubmitInput) { in.Category = "underwater" }},
		{"past date", func(in *SubmitInput) { in.DateTime = "2020-01-01T10:00:00Z" }},
		{"unparsable date", func(in *SubmitInput) { in.DateTime = "next tuesday" }},
		{"unknown kind", func(in *SubmitInput) { in.Kind = "grant" }},
		{"missing owner", func(in *SubmitInput) { in.OwnerID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validEventInput()
			tc.mutate(&in)
			_, err := svc.Submit(context.Background(), in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestSubmitAcceptsSplitDateAndClock(t *testing.T) {
	repo := noopRequestRepo()
	svc := NewSubmissionService(repo, &storeStub{})

	in := validEventInput()
	in.DateTime = ""
	in.Date = time.Now().Add(72 * time.Hour).Format("2006-01-02")
	in.Clock = "18:30"

	request, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 18, request.DateTime.Hour())
	assert.Equal(t, 30, request.DateTime.Minute())
}
