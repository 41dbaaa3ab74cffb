package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "sprintplanner/controllers"
	"sprintplanner/middleware"
	"sprintplanner/planner"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Google OAuth routes
	auth.Get("/google", controller.GoogleOAuth)
	auth.Get("/google/callback", controller.GoogleOAuthCallback)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Get("/me", controller.GetCurrentUser)
}

func SetupAPIRoutes(app *fiber.App, service *planner.Service, log *logrus.Logger) {
	projectController := controller.NewProjectController(service, log)
	taskController := controller.NewTaskController(service, log)
	teamController := controller.NewTeamController(service, log)
	invitationController := controller.NewInvitationController(service, log)
	activityController := controller.NewActivityController(service, log)

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Project routes
	project := api.Group("/projects")
	project.Get("/", projectController.GetProjects)
	project.Post("/", projectController.CreateProject)
	project.Get("/:id", projectController.GetProject)
	project.Patch("/:id", projectController.UpdateProject)
	project.Delete("/:id", projectController.DeleteProject)

	// Board tasks
	project.Get("/:id/tasks", taskController.GetProjectTasks)
	project.Post("/:id/tasks", taskController.CreateTask)
	api.Get("/tasks", taskController.GetMyTasks)
	api.Patch("/tasks/:id/category", taskController.UpdateTaskCategory)
	api.Delete("/tasks/:id", taskController.DeleteTask)

	// Team routes
	project.Get("/:id/team", teamController.GetTeamMembers)
	project.Post("/:id/team", teamController.AddTeamMember)
	project.Delete("/:id/team/:userId", teamController.DeleteTeamMember)
	project.Post("/:id/leave", teamController.LeaveTeam)

	// Invitation routes, rate limited on the sending side
	project.Post("/:id/invitations", middleware.InviteRateLimiter(), invitationController.InviteTeamMember)
	project.Get("/:id/invitations", invitationController.GetProjectInvitations)
	api.Get("/invitations", invitationController.GetMyInvitations)
	api.Delete("/invitations/:id", invitationController.RemoveInvitation)
	api.Post("/invitations/:id/accept", invitationController.AcceptInvitation)
	api.Post("/invitations/:id/decline", invitationController.DeclineInvitation)

	// Personal board, kept at its original unversioned path
	activities := app.Group("/api/activities", middleware.Protected())
	activities.Get("/", activityController.GetActivities)
	activities.Post("/", activityController.CreateActivity)
	activities.Patch("/:id", activityController.UpdateActivityCategory)
	activities.Delete("/:id", activityController.DeleteActivity)
}

func SetupRoutes(app *fiber.App, db *gorm.DB, log *logrus.Logger) {
	// One GORM store serves as both persistence and user directory
	store := planner.NewGormStore(db)
	service := planner.NewService(store, store, log)

	controller.InitOAuth()

	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app)
	SetupAPIRoutes(app, service, log)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
