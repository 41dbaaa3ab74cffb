package planner

import (
	"context"
	"errors"

	"sprintplanner/models"
)

// errStore is a stand-in storage failure.
var errStore = errors.New("storage down")

// mockStore implements Store with overridable function fields. Calls
// without a corresponding field return zero values.
type mockStore struct {
	CreateProjectWithOwnerFunc func(ctx context.Context, project *models.Project) error
	ProjectByIDFunc            func(ctx context.Context, id uint) (*models.Project, error)
	ProjectsForUserFunc        func(ctx context.Context, userID uint) ([]models.Project, error)
	UpdateProjectFunc          func(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteProjectCascadeFunc   func(ctx context.Context, id uint) error

	MembersOfFunc    func(ctx context.Context, projectID uint) ([]models.ProjectMember, error)
	AddMemberFunc    func(ctx context.Context, member *models.ProjectMember) error
	RemoveMemberFunc func(ctx context.Context, projectID, userID uint) error

	TaskByIDFunc           func(ctx context.Context, id uint) (*models.Task, error)
	TasksForProjectFunc    func(ctx context.Context, projectID uint) ([]models.Task, error)
	TasksForUserFunc       func(ctx context.Context, userID uint) ([]models.Task, error)
	CreateTaskFunc         func(ctx context.Context, task *models.Task) error
	UpdateTaskCategoryFunc func(ctx context.Context, id uint, category models.TaskCategory) error
	DeleteTaskFunc         func(ctx context.Context, id uint) error

	InvitationByIDFunc             func(ctx context.Context, id uint) (*models.ProjectInvitation, error)
	PendingInvitationFunc          func(ctx context.Context, projectID uint, email string) (*models.ProjectInvitation, error)
	InvitationsForProjectFunc      func(ctx context.Context, projectID uint) ([]models.ProjectInvitation, error)
	PendingInvitationsForEmailFunc func(ctx context.Context, email string) ([]models.ProjectInvitation, error)
	CreateInvitationFunc           func(ctx context.Context, inv *models.ProjectInvitation) error
	SetInvitationStatusFunc        func(ctx context.Context, id uint, status models.InvitationStatus) error
	DeleteInvitationFunc           func(ctx context.Context, id uint) error

	ActivityByIDFunc           func(ctx context.Context, id uint) (*models.Activity, error)
	ActivitiesForUserFunc      func(ctx context.Context, userID uint) ([]models.Activity, error)
	CreateActivityFunc         func(ctx context.Context, activity *models.Activity) error
	UpdateActivityCategoryFunc func(ctx context.Context, id uint, category models.TaskCategory) error
	DeleteActivityFunc         func(ctx context.Context, id uint) error
}

func (m *mockStore) CreateProjectWithOwner(ctx context.Context, project *models.Project) error {
	if m.CreateProjectWithOwnerFunc != nil {
		return m.CreateProjectWithOwnerFunc(ctx, project)
	}
	return nil
}

func (m *mockStore) ProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	if m.ProjectByIDFunc != nil {
		return m.ProjectByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) ProjectsForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	if m.ProjectsForUserFunc != nil {
		return m.ProjectsForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) UpdateProject(ctx context.Context, id uint, fields map[string]interface{}) error {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, id, fields)
	}
	return nil
}

func (m *mockStore) DeleteProjectCascade(ctx context.Context, id uint) error {
	if m.DeleteProjectCascadeFunc != nil {
		return m.DeleteProjectCascadeFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) MembersOf(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	if m.MembersOfFunc != nil {
		return m.MembersOfFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockStore) AddMember(ctx context.Context, member *models.ProjectMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *mockStore) RemoveMember(ctx context.Context, projectID, userID uint) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, projectID, userID)
	}
	return nil
}

func (m *mockStore) TaskByID(ctx context.Context, id uint) (*models.Task, error) {
	if m.TaskByIDFunc != nil {
		return m.TaskByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) TasksForProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	if m.TasksForProjectFunc != nil {
		return m.TasksForProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockStore) TasksForUser(ctx context.Context, userID uint) ([]models.Task, error) {
	if m.TasksForUserFunc != nil {
		return m.TasksForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) CreateTask(ctx context.Context, task *models.Task) error {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, task)
	}
	return nil
}

func (m *mockStore) UpdateTaskCategory(ctx context.Context, id uint, category models.TaskCategory) error {
	if m.UpdateTaskCategoryFunc != nil {
		return m.UpdateTaskCategoryFunc(ctx, id, category)
	}
	return nil
}

func (m *mockStore) DeleteTask(ctx context.Context, id uint) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) InvitationByID(ctx context.Context, id uint) (*models.ProjectInvitation, error) {
	if m.InvitationByIDFunc != nil {
		return m.InvitationByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) PendingInvitation(ctx context.Context, projectID uint, email string) (*models.ProjectInvitation, error) {
	if m.PendingInvitationFunc != nil {
		return m.PendingInvitationFunc(ctx, projectID, email)
	}
	return nil, nil
}

func (m *mockStore) InvitationsForProject(ctx context.Context, projectID uint) ([]models.ProjectInvitation, error) {
	if m.InvitationsForProjectFunc != nil {
		return m.InvitationsForProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockStore) PendingInvitationsForEmail(ctx context.Context, email string) ([]models.ProjectInvitation, error) {
	if m.PendingInvitationsForEmailFunc != nil {
		return m.PendingInvitationsForEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockStore) CreateInvitation(ctx context.Context, inv *models.ProjectInvitation) error {
	if m.CreateInvitationFunc != nil {
		return m.CreateInvitationFunc(ctx, inv)
	}
	return nil
}

func (m *mockStore) SetInvitationStatus(ctx context.Context, id uint, status models.InvitationStatus) error {
	if m.SetInvitationStatusFunc != nil {
		return m.SetInvitationStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockStore) DeleteInvitation(ctx context.Context, id uint) error {
	if m.DeleteInvitationFunc != nil {
		return m.DeleteInvitationFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) ActivityByID(ctx context.Context, id uint) (*models.Activity, error) {
	if m.ActivityByIDFunc != nil {
		return m.ActivityByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) ActivitiesForUser(ctx context.Context, userID uint) ([]models.Activity, error) {
	if m.ActivitiesForUserFunc != nil {
		return m.ActivitiesForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if m.CreateActivityFunc != nil {
		return m.CreateActivityFunc(ctx, activity)
	}
	return nil
}

func (m *mockStore) UpdateActivityCategory(ctx context.Context, id uint, category models.TaskCategory) error {
	if m.UpdateActivityCategoryFunc != nil {
		return m.UpdateActivityCategoryFunc(ctx, id, category)
	}
	return nil
}

func (m *mockStore) DeleteActivity(ctx context.Context, id uint) error {
	if m.DeleteActivityFunc != nil {
		return m.DeleteActivityFunc(ctx, id)
	}
	return nil
}

// mockDirectory implements Directory with function fields.
type mockDirectory struct {
	ProfileByIDFunc func(ctx context.Context, id uint) (*Profile, error)
	FindByEmailFunc func(ctx context.Context, email string) (*Profile, error)
}

func (m *mockDirectory) ProfileByID(ctx context.Context, id uint) (*Profile, error) {
	if m.ProfileByIDFunc != nil {
		return m.ProfileByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDirectory) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}
