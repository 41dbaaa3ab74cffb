package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"sprintplanner/models"
	"sprintplanner/planner"
	"sprintplanner/utils"
)

type TaskController struct {
	Service *planner.Service
	Logger  *logrus.Logger
}

func NewTaskController(service *planner.Service, logger *logrus.Logger) *TaskController {
	return &TaskController{Service: service, Logger: logger}
}

// GetProjectTasks lists the board of a project.
func (tc *TaskController) GetProjectTasks(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	tasks, serr := tc.Service.TasksForProject(c.UserContext(), currentUserID(c), uint(projectID))
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.JSON(tasks)
}

// GetMyTasks lists every task the user created across projects.
func (tc *TaskController) GetMyTasks(c *fiber.Ctx) error {
	tasks, err := tc.Service.MyTasks(c.UserContext(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tasks)
}

type createTaskRequest struct {
	Title    string              `json:"title"`
	Category models.TaskCategory `json:"category"`
}

// CreateTask adds a card to the project in the path.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, serr := tc.Service.CreateTask(c.UserContext(), currentUserID(c), planner.CreateTaskInput{
		Title:     req.Title,
		Category:  req.Category,
		ProjectID: uint(projectID),
	})
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

type updateCategoryRequest struct {
	Category models.TaskCategory `json:"category"`
}

// UpdateTaskCategory moves a card to any column; no adjacency rule.
func (tc *TaskController) UpdateTaskCategory(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	var req updateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, serr := tc.Service.UpdateTaskCategory(c.UserContext(), currentUserID(c), uint(taskID), req.Category)
	if serr != nil {
		return serviceError(c, serr)
	}
	return c.JSON(task)
}

func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	if err := tc.Service.DeleteTask(c.UserContext(), currentUserID(c), uint(taskID)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Task deleted successfully",
	})
}
