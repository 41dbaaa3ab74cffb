package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sprintplanner/models"
	"sprintplanner/planner"
	"sprintplanner/utils"
)

// ActivityController serves the personal board under /api/activities.
// The routes predate the project boards and keep their original shape:
// PATCH takes the category as the whole JSON body.
type ActivityController struct {
	Service *planner.Service
	Logger  *logrus.Logger
}

func NewActivityController(service *planner.Service, logger *logrus.Logger) *ActivityController {
	return &ActivityController{Service: service, Logger: logger}
}

func (ac *ActivityController) GetActivities(c *fiber.Ctx) error {
	activities, err := ac.Service.MyActivities(c.UserContext(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activities)
}

type createActivityRequest struct {
	Title    string              `json:"title"`
	Category models.TaskCategory `json:"category"`
}

func (ac *ActivityController) CreateActivity(c *fiber.Ctx) error {
	var req createActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.Category == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Title and category are required")
	}

	activity, err := ac.Service.CreateActivity(c.UserContext(), currentUserID(c), planner.CreateActivityInput{
		Title:    req.Title,
		Category: req.Category,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (ac *ActivityController) UpdateActivityCategory(c *fiber.Ctx) error {
	activityID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	// The body is the bare category as a JSON string, a quirk kept for
	// existing clients.
	var category models.TaskCategory
	if err := json.Unmarshal(c.Body(), &category); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Category")
	}

	activity, serr := ac.Service.UpdateActivityCategory(c.UserContext(), currentUserID(c), uint(activityID), category)
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.JSON(activity)
}

func (ac *ActivityController) DeleteActivity(c *fiber.Ctx) error {
	activityID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	if err := ac.Service.DeleteActivity(c.UserContext(), currentUserID(c), uint(activityID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Activity deleted successfully",
	})
}
