package server

import (
	"eventdesk/internal/models"
	"eventdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// InviteParticipant handles POST /api/requests/:id/participants
// @Summary Invite a participant
// @Description Add a participant to a request. Duplicate invites are allowed.
// @Tags participants
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param body body object{full_name=string,email=string,phone=string} true "Participant"
// @Success 201 {object} models.Participant
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/participants [post]
func (s *Server) InviteParticipant(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	var body struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	participant, err := s.participantService.Invite(c.UserContext(), id, userID, service.InviteInput{
		FullName: body.FullName,
		Email:    body.Email,
		Phone:    body.Phone,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(participant)
}

// GetParticipants handles GET /api/requests/:id/participants
// @Summary List participants
// @Description List the participant roster of a request, newest invite first.
// @Tags participants
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {array} models.Participant
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/participants [get]
func (s *Server) GetParticipants(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	participants, err := s.participantService.List(c.UserContext(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(participants)
}
