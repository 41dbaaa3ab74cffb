package planner

import (
	"context"

	"sprintplanner/models"
)

// Store is the persistence collaborator. Lookups return (nil, nil) when
// the row does not exist; an error always means the storage layer itself
// failed. The GORM implementation lives in gorm_store.go; tests swap in
// function-field mocks.
type Store interface {
	// CreateProjectWithOwner inserts the project and the owner's member
	// row in one transaction. Neither persists if either insert fails.
	CreateProjectWithOwner(ctx context.Context, project *models.Project) error
	ProjectByID(ctx context.Context, id uint) (*models.Project, error)
	// ProjectsForUser returns every project the user owns or belongs to,
	// tasks eagerly loaded.
	ProjectsForUser(ctx context.Context, userID uint) ([]models.Project, error)
	UpdateProject(ctx context.Context, id uint, fields map[string]interface{}) error
	// DeleteProjectCascade removes tasks, members and invitations before
	// the project row, all inside one transaction.
	DeleteProjectCascade(ctx context.Context, id uint) error

	MembersOf(ctx context.Context, projectID uint) ([]models.ProjectMember, error)
	AddMember(ctx context.Context, member *models.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID uint) error

	TaskByID(ctx context.Context, id uint) (*models.Task, error)
	TasksForProject(ctx context.Context, projectID uint) ([]models.Task, error)
	TasksForUser(ctx context.Context, userID uint) ([]models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	UpdateTaskCategory(ctx context.Context, id uint, category models.TaskCategory) error
	DeleteTask(ctx context.Context, id uint) error

	InvitationByID(ctx context.Context, id uint) (*models.ProjectInvitation, error)
	PendingInvitation(ctx context.Context, projectID uint, email string) (*models.ProjectInvitation, error)
	InvitationsForProject(ctx context.Context, projectID uint) ([]models.ProjectInvitation, error)
	PendingInvitationsForEmail(ctx context.Context, email string) ([]models.ProjectInvitation, error)
	CreateInvitation(ctx context.Context, inv *models.ProjectInvitation) error
	SetInvitationStatus(ctx context.Context, id uint, status models.InvitationStatus) error
	DeleteInvitation(ctx context.Context, id uint) error

	ActivityByID(ctx context.Context, id uint) (*models.Activity, error)
	ActivitiesForUser(ctx context.Context, userID uint) ([]models.Activity, error)
	CreateActivity(ctx context.Context, activity *models.Activity) error
	UpdateActivityCategory(ctx context.Context, id uint, category models.TaskCategory) error
	DeleteActivity(ctx context.Context, id uint) error
}

// Profile is the public shape of a user account.
type Profile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}

// Directory resolves user ids and emails to profiles. Same (nil, nil)
// convention as Store for missing users.
type Directory interface {
	ProfileByID(ctx context.Context, id uint) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
}
