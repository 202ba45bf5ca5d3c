// Package service contains the business rules for the request lifecycle.
package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"eventdesk/internal/middleware"
	"eventdesk/internal/models"
	"eventdesk/internal/observability"
	"eventdesk/internal/repository"
	"eventdesk/internal/storage"
	"eventdesk/internal/validation"
)

const DefaultMaxAttachmentBytes = 5 * 1024 * 1024

// SubmissionPolicy parameterizes validation and upload behavior per request
// kind. The three original flows disagreed on attachment handling; both
// built-in policies follow the strict variant: bad attachments are rejected
// before any upload and an upload failure aborts the whole submission.
type SubmissionPolicy struct {
	Kind               models.RequestKind
	RequireAttachment  bool
	RequireAmount      bool
	EnforceImagePolicy bool
	MaxAttachmentBytes int64
}

// EventPolicy is the submission policy for event requests: optional banner
// image, image MIME and size enforced.
func EventPolicy() SubmissionPolicy {
	return SubmissionPolicy{
		Kind:               models.RequestKindEvent,
		RequireAttachment:  false,
		RequireAmount:      false,
		EnforceImagePolicy: true,
		MaxAttachmentBytes: DefaultMaxAttachmentBytes,
	}
}

// LoanPolicy is the submission policy for loan requests: amount and a
// supporting document are mandatory; the document may be any type.
func LoanPolicy() SubmissionPolicy {
	return SubmissionPolicy{
		Kind:               models.RequestKindLoan,
		RequireAttachment:  true,
		RequireAmount:      true,
		EnforceImagePolicy: false,
		MaxAttachmentBytes: DefaultMaxAttachmentBytes,
	}
}

// Attachment is an uploaded file accompanying a submission.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SubmitInput carries one submission. DateTime is a combined timestamp;
// Date and Clock are the split components used by the event form. Exactly
// one of the two shapes must be provided.
type SubmitInput struct {
	OwnerID     uint
	Kind        models.RequestKind
	Title       string
	Description string
	Location    string
	Category    string
	Amount      *float64
	DateTime    string
	Date        string
	Clock       string
	Attachment  *Attachment
}

// SubmissionService orchestrates validate -> upload -> insert for new requests.
type SubmissionService struct {
	requests repository.RequestRepository
	store    storage.Store
	policies map[models.RequestKind]SubmissionPolicy
	now      func() time.Time
}

// NewSubmissionService creates a SubmissionService with the built-in policies.
func NewSubmissionService(requests repository.RequestRepository, store storage.Store) *SubmissionService {
	return &SubmissionService{
		requests: requests,
		store:    store,
		policies: map[models.RequestKind]SubmissionPolicy{
			models.RequestKindEvent: EventPolicy(),
			models.RequestKindLoan:  LoanPolicy(),
		},
		now: time.Now,
	}
}

// Submit validates the input, uploads the attachment if present and inserts
// the pending row. No row is ever inserted after a failed upload.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*models.Request, error) {
	policy, ok := s.policies[in.Kind]
	if !ok {
		return nil, models.NewValidationError("Unknown request kind")
	}

	if in.OwnerID == 0 {
		return nil, models.NewValidationError("Owner is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, models.NewValidationError("Location is required")
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if policy.RequireAmount {
		if in.Amount == nil || *in.Amount <= 0 {
			return nil, models.NewValidationError("Amount is required")
		}
	}

	dateTime, err := validation.ParseDateTime(in.DateTime, in.Date, in.Clock)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if dateTime.Before(s.now()) {
		return nil, models.NewValidationError("Date must not be in the past")
	}

	if policy.RequireAttachment && in.Attachment == nil {
		return nil, models.NewValidationError("Supporting document is required")
	}
	if in.Attachment != nil {
		if err := policy.checkAttachment(in.Attachment); err != nil {
			return nil, err
		}
	}

	imageURL, err := s.uploadAttachment(ctx, in.OwnerID, in.Attachment, policy)
	if err != nil {
		observability.RequestSubmissions.WithLabelValues(string(in.Kind), "upload_failed").Inc()
		return nil, err
	}

	request := &models.Request{
		Kind:        in.Kind,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		Amount:      in.Amount,
		DateTime:    dateTime,
		ImageURL:    imageURL,
		Status:      models.RequestStatusPending,
		UserID:      in.OwnerID,
		Version:     1,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		observability.RequestSubmissions.WithLabelValues(string(in.Kind), "persist_failed").Inc()
		return nil, models.NewInternalError(err)
	}

	observability.RequestSubmissions.WithLabelValues(string(in.Kind), "accepted").Inc()
	return request, nil
}

func (p SubmissionPolicy) checkAttachment(att *Attachment) error {
	if len(att.Content) == 0 {
		return models.NewValidationError("Attached file is empty")
	}

	maxBytes := p.MaxAttachmentBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}
	if !p.EnforceImagePolicy {
		return nil
	}

	// Sniff the real content type instead of trusting the client header.
	detected := http.DetectContentType(att.Content)
	if !strings.HasPrefix(detected, "image/") {
		return models.NewValidationError("Only image files can be uploaded")
	}
	if int64(len(att.Content)) > maxBytes {
		return models.NewValidationError("Image must be smaller than 5MB")
	}
	return nil
}

// uploadAttachment returns the public URL of the stored object, or nil when
// there is nothing to upload.
func (s *SubmissionService) uploadAttachment(ctx context.Context, ownerID uint, att *Attachment, policy SubmissionPolicy) (*string, error) {
	if att == nil {
		return nil, nil
	}

	key := storage.ObjectKey(ownerID, att.Filename)
	url, err := s.store.Put(ctx, key, att.Content, att.ContentType)
	if err != nil {
		return nil, models.NewUploadError("Failed to upload file", err)
	}
	observability.UploadBytes.Observe(float64(len(att.Content)))

	if policy.EnforceImagePolicy {
		// Thumbnail generation is best-effort; the original image already
		// landed and remains the source of truth.
		if thumb, thumbErr := storage.Thumbnail(att.Content); thumbErr == nil {
			if _, putErr := s.store.Put(ctx, storage.ThumbnailKey(key), thumb, "image/webp"); putErr != nil {
				middleware.Logger.WarnContext(ctx, "thumbnail upload failed", "key", key, "error", putErr.Error())
			}
		}
	}

	return &url, nil
}
