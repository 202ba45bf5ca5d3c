package server

import (
	"eventdesk/internal/models"
	"eventdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdminRequests handles GET /api/admin/requests
// @Summary List requests for review
// @Description List all requests newest-first with optional status filter and search.
// @Tags admin
// @Produce json
// @Param status query string false "Status filter (pending, approved, rejected or all)"
// @Param search query string false "Search term over title, description and location"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Request
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/requests [get]
func (s *Server) GetAdminRequests(c *fiber.Ctx) error {
	requests, err := s.reviewService.List(c.UserContext(), service.ListInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(requests)
}

// GetRequestStats handles GET /api/admin/requests/stats
// @Summary Request totals by status
// @Tags admin
// @Produce json
// @Success 200 {object} models.RequestStats
// @Security BearerAuth
// @Router /admin/requests/stats [get]
func (s *Server) GetRequestStats(c *fiber.Ctx) error {
	stats, err := s.reviewService.Stats(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(stats)
}

// UpdateRequestStatus handles PATCH /api/admin/requests/:id/status
// @Summary Approve or reject a request
// @Description Move a request to approved or rejected. A non-zero expected_version makes the write conditional.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param body body object{status=string,expected_version=integer} true "Decision"
// @Success 200 {object} models.Request
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/requests/{id}/status [patch]
func (s *Server) UpdateRequestStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body struct {
		Status          string `json:"status"`
		ExpectedVersion uint   `json:"expected_version"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.reviewService.UpdateStatus(c.UserContext(), id, body.Status, body.ExpectedVersion)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(request)
}

// UpdateRequest handles PUT /api/admin/requests/:id
// @Summary Edit request details
// @Description Update the editable fields of a request without touching its status. Omitted fields are left unchanged.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param body body object{title=string,description=string,location=string,category=string,date_time=string,amount=number,expected_version=integer} true "Fields to update"
// @Success 200 {object} models.Request
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/requests/{id} [put]
func (s *Server) UpdateRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		Location        string   `json:"location"`
		Category        string   `json:"category"`
		DateTime        string   `json:"date_time"`
		Amount          *float64 `json:"amount"`
		ExpectedVersion uint     `json:"expected_version"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.reviewService.Update(c.UserContext(), id, service.UpdateInput{
		Title:           body.Title,
		Description:     body.Description,
		Location:        body.Location,
		Category:        body.Category,
		DateTime:        body.DateTime,
		Amount:          body.Amount,
		ExpectedVersion: body.ExpectedVersion,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(request)
}

// DeleteRequest handles DELETE /api/admin/requests/:id
// @Summary Delete a request
// @Description Remove a request and its participant roster.
// @Tags admin
// @Produce json
// @Param id path int true "Request ID"
// @Param expected_version query int false "Conditional delete version"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/requests/{id} [delete]
func (s *Server) DeleteRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	expectedVersion := uint(c.QueryInt("expected_version"))
	if err := s.reviewService.Delete(c.UserContext(), id, expectedVersion); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Request deleted"})
}
