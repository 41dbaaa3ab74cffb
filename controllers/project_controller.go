package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sprintplanner/planner"
	"sprintplanner/utils"
)

type ProjectController struct {
	Service *planner.Service
	Logger  *logrus.Logger
}

func NewProjectController(service *planner.Service, logger *logrus.Logger) *ProjectController {
	return &ProjectController{Service: service, Logger: logger}
}

// GetProjects lists the projects the user owns or belongs to, tasks
// included.
func (pc *ProjectController) GetProjects(c *fiber.Ctx) error {
	projects, err := pc.Service.ProjectsForUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(projects)
}

// GetProject returns one project, visible to its team only.
func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	project, serr := pc.Service.ProjectByID(c.UserContext(), currentUserID(c), uint(projectID))
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.JSON(project)
}

func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	var in planner.CreateProjectInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	project, err := pc.Service.CreateProject(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateProject applies a partial update; absent fields stay untouched.
func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req updateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	project, serr := pc.Service.UpdateProject(c.UserContext(), currentUserID(c), uint(projectID), req.Name, req.Description)
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.JSON(project)
}

func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	if err := pc.Service.DeleteProject(c.UserContext(), currentUserID(c), uint(projectID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}
