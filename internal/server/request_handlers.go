package server

import (
	"io"
	"strconv"
	"strings"

	"eventdesk/internal/models"
	"eventdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// attachmentFields are the multipart field names accepted for the uploaded
// file. Event banners arrive as "image", loan documents as "document".
var attachmentFields = []string{"image", "document", "file"}

// SubmitRequest handles POST /api/requests
// @Summary Submit a request
// @Description Submit an event or loan request with an optional attachment. Loan requests require an amount and a supporting document.
// @Tags requests
// @Accept multipart/form-data
// @Produce json
// @Param kind formData string false "Request kind (event or loan)" default(event)
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param location formData string true "Location"
// @Param category formData string true "Category"
// @Param date_time formData string false "Combined RFC 3339 timestamp"
// @Param date formData string false "Date component (2006-01-02)"
// @Param time formData string false "Time component (15:04)"
// @Param amount formData number false "Requested amount (loans)"
// @Param image formData file false "Banner image (events)"
// @Param document formData file false "Supporting document (loans)"
// @Success 201 {object} models.Request
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /requests [post]
func (s *Server) SubmitRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)

	kind := models.RequestKind(strings.ToLower(strings.TrimSpace(c.FormValue("kind"))))
	if kind == "" {
		kind = models.RequestKindEvent
	}

	in := service.SubmitInput{
		OwnerID:     userID,
		Kind:        kind,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
		Category:    c.FormValue("category"),
		DateTime:    c.FormValue("date_time"),
		Date:        c.FormValue("date"),
		Clock:       c.FormValue("time"),
	}

	if raw := strings.TrimSpace(c.FormValue("amount")); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid amount"))
		}
		in.Amount = &amount
	}

	attachment, err := s.readAttachment(c)
	if err != nil {
		return respondAppError(c, err)
	}
	in.Attachment = attachment

	request, err := s.submissionService.Submit(c.UserContext(), in)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func (s *Server) readAttachment(c *fiber.Ctx) (*service.Attachment, error) {
	for _, field := range attachmentFields {
		header, err := c.FormFile(field)
		if err != nil || header == nil {
			continue
		}

		file, err := header.Open()
		if err != nil {
			return nil, models.NewUploadError("Failed to read uploaded file", err)
		}
		content, err := io.ReadAll(file)
		closeErr := file.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, models.NewUploadError("Failed to read uploaded file", err)
		}

		return &service.Attachment{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		}, nil
	}
	return nil, nil
}

// GetMyRequests handles GET /api/requests/mine
// @Summary List my requests
// @Description List the caller's requests newest-first, optionally narrowed by a free-text search over title, status, category and id.
// @Tags requests
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {array} models.Request
// @Security BearerAuth
// @Router /requests/mine [get]
func (s *Server) GetMyRequests(c *fiber.Ctx) error {
	userID := currentUserID(c)

	requests, err := s.reviewService.ListByOwner(c.UserContext(), userID, c.Query("search"))
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(requests)
}

// GetRequest handles GET /api/requests/:id
// @Summary Get request detail
// @Description Fetch a request with its organizer profile and participant roster.
// @Tags requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} service.RequestDetail
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id} [get]
func (s *Server) GetRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.reviewService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(detail)
}
