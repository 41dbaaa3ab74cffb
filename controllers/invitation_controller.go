package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sprintplanner/planner"
	"sprintplanner/utils"
)

type InvitationController struct {
	Service *planner.Service
	Logger  *logrus.Logger
}

func NewInvitationController(service *planner.Service, logger *logrus.Logger) *InvitationController {
	return &InvitationController{Service: service, Logger: logger}
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// InviteTeamMember creates a pending invitation for a registered email.
func (ic *InvitationController) InviteTeamMember(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	inv, serr := ic.Service.InviteTeamMember(c.UserContext(), currentUserID(c), uint(projectID), req.Email)
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetProjectInvitations lists a project's invitations. Owner only.
func (ic *InvitationController) GetProjectInvitations(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	invitations, serr := ic.Service.InvitationsForProject(c.UserContext(), currentUserID(c), uint(projectID))
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.JSON(invitations)
}

// GetMyInvitations lists pending invitations addressed to the caller.
func (ic *InvitationController) GetMyInvitations(c *fiber.Ctx) error {
	invitations, err := ic.Service.MyInvitations(c.UserContext(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(invitations)
}

// RemoveInvitation revokes an invitation before it is answered.
func (ic *InvitationController) RemoveInvitation(c *fiber.Ctx) error {
	invitationID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid invitation ID")
	}

	if err := ic.Service.RemoveInvitation(c.UserContext(), currentUserID(c), uint(invitationID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Invitation removed successfully",
	})
}

// AcceptInvitation joins the caller to the team if the invitation is
// still pending and inside its window.
func (ic *InvitationController) AcceptInvitation(c *fiber.Ctx) error {
	invitationID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid invitation ID")
	}

	if err := ic.Service.AcceptInvitation(c.UserContext(), currentUserID(c), uint(invitationID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Invitation accepted",
	})
}

func (ic *InvitationController) DeclineInvitation(c *fiber.Ctx) error {
	invitationID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid invitation ID")
	}

	if err := ic.Service.DeclineInvitation(c.UserContext(), currentUserID(c), uint(invitationID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Invitation declined",
	})
}
