package planner

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sprintplanner/models"
)

// GormStore implements Store and Directory over a GORM connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// notFoundNil maps gorm's record-not-found to the (nil, nil) convention.
func notFoundNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (g *GormStore) CreateProjectWithOwner(ctx context.Context, project *models.Project) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{ProjectID: project.ID, UserID: project.OwnerID}
		return tx.Create(&member).Error
	})
}

func (g *GormStore) ProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := g.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFoundNil(err)
	}
	return &project, nil
}

func (g *GormStore) ProjectsForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := g.db.WithContext(ctx).
		Preload("Tasks").
		Where("owner_id = ? OR id IN (?)", userID,
			g.db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)).
		Order("id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (g *GormStore) UpdateProject(ctx context.Context, id uint, fields map[string]interface{}) error {
	return g.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteProjectCascade deletes dependents before the project row so the
// guarantee does not rest on declared FK cascade behavior.
func (g *GormStore) DeleteProjectCascade(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectInvitation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

func (g *GormStore) MembersOf(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := g.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (g *GormStore) AddMember(ctx context.Context, member *models.ProjectMember) error {
	// FirstOrCreate keeps a double accept from violating the unique
	// (project, user) index.
	return g.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", member.ProjectID, member.UserID).
		FirstOrCreate(member).Error
}

func (g *GormStore) RemoveMember(ctx context.Context, projectID, userID uint) error {
	return g.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

func (g *GormStore) TaskByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := g.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, notFoundNil(err)
	}
	return &task, nil
}

func (g *GormStore) TasksForProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := g.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (g *GormStore) TasksForUser(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (g *GormStore) CreateTask(ctx context.Context, task *models.Task) error {
	return g.db.WithContext(ctx).Create(task).Error
}

func (g *GormStore) UpdateTaskCategory(ctx context.Context, id uint, category models.TaskCategory) error {
	return g.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).
		Update("category", category).Error
}

func (g *GormStore) DeleteTask(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

func (g *GormStore) InvitationByID(ctx context.Context, id uint) (*models.ProjectInvitation, error) {
	var inv models.ProjectInvitation
	if err := g.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, notFoundNil(err)
	}
	return &inv, nil
}

func (g *GormStore) PendingInvitation(ctx context.Context, projectID uint, email string) (*models.ProjectInvitation, error) {
	var inv models.ProjectInvitation
	err := g.db.WithContext(ctx).
		Where("project_id = ? AND invited_email = ? AND status = ?",
			projectID, email, models.InvitationPending).
		First(&inv).Error
	if err != nil {
		return nil, notFoundNil(err)
	}
	return &inv, nil
}

func (g *GormStore) InvitationsForProject(ctx context.Context, projectID uint) ([]models.ProjectInvitation, error) {
	var invitations []models.ProjectInvitation
	err := g.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (g *GormStore) PendingInvitationsForEmail(ctx context.Context, email string) ([]models.ProjectInvitation, error) {
	var invitations []models.ProjectInvitation
	err := g.db.WithContext(ctx).
		Where("invited_email = ? AND status = ?", email, models.InvitationPending).
		Order("id DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (g *GormStore) CreateInvitation(ctx context.Context, inv *models.ProjectInvitation) error {
	return g.db.WithContext(ctx).Create(inv).Error
}

func (g *GormStore) SetInvitationStatus(ctx context.Context, id uint, status models.InvitationStatus) error {
	return g.db.WithContext(ctx).Model(&models.ProjectInvitation{}).Where("id = ?", id).
		Update("status", status).Error
}

func (g *GormStore) DeleteInvitation(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Delete(&models.ProjectInvitation{}, id).Error
}

func (g *GormStore) ActivityByID(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := g.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return nil, notFoundNil(err)
	}
	return &activity, nil
}

func (g *GormStore) ActivitiesForUser(ctx context.Context, userID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (g *GormStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return g.db.WithContext(ctx).Create(activity).Error
}

func (g *GormStore) UpdateActivityCategory(ctx context.Context, id uint, category models.TaskCategory) error {
	return g.db.WithContext(ctx).Model(&models.Activity{}).Where("id = ?", id).
		Update("category", category).Error
}

func (g *GormStore) DeleteActivity(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Delete(&models.Activity{}, id).Error
}

// ProfileByID implements Directory against the users table.
func (g *GormStore) ProfileByID(ctx context.Context, id uint) (*Profile, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundNil(err)
	}
	return profileFromUser(&user), nil
}

func (g *GormStore) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	var user models.User
	if err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFoundNil(err)
	}
	return profileFromUser(&user), nil
}

func profileFromUser(u *models.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.DisplayName(),
		AvatarURL: u.AvatarURL,
	}
}
