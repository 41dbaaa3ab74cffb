package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sprintplanner/planner"
	"sprintplanner/utils"
)

type TeamController struct {
	Service *planner.Service
	Logger  *logrus.Logger
}

func NewTeamController(service *planner.Service, logger *logrus.Logger) *TeamController {
	return &TeamController{Service: service, Logger: logger}
}

// GetTeamMembers resolves the project's members to profiles. An empty
// team is an empty list, not an error.
func (tc *TeamController) GetTeamMembers(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	members, serr := tc.Service.TeamMembers(c.UserContext(), currentUserID(c), uint(projectID))
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.JSON(members)
}

type addMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AddTeamMember puts a registered user straight onto the team.
func (tc *TeamController) AddTeamMember(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req addMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	if err := tc.Service.AddTeamMember(c.UserContext(), currentUserID(c), uint(projectID), req.Email); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Team member added successfully",
	})
}

// DeleteTeamMember removes a member. Owner only; the owner's own row is
// off limits.
func (tc *TeamController) DeleteTeamMember(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := tc.Service.DeleteTeamMember(c.UserContext(), currentUserID(c), uint(projectID), uint(targetID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Team member removed successfully",
	})
}

// LeaveTeam removes the caller's own membership.
func (tc *TeamController) LeaveTeam(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	if err := tc.Service.LeaveTeam(c.UserContext(), currentUserID(c), uint(projectID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "You have left the team",
	})
}
