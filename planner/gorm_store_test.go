package planner

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sprintplanner/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.ProjectInvitation{},
		&models.Activity{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Leaving a team and rejoining must insert a fresh member row; the unique
// (project, user) index must not trip over the removed one.
func TestAddMemberAfterLeaving(t *testing.T) {
	store := NewGormStore(newTestDB(t))
	ctx := context.Background()

	project := &models.Project{Name: "board", OwnerID: 1}
	if err := store.CreateProjectWithOwner(ctx, project); err != nil {
		t.Fatalf("CreateProjectWithOwner: %v", err)
	}

	if err := store.AddMember(ctx, &models.ProjectMember{ProjectID: project.ID, UserID: 2}); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := store.RemoveMember(ctx, project.ID, 2); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if err := store.AddMember(ctx, &models.ProjectMember{ProjectID: project.ID, UserID: 2}); err != nil {
		t.Fatalf("rejoin after leaving: %v", err)
	}

	members, err := store.MembersOf(ctx, project.ID)
	if err != nil {
		t.Fatalf("MembersOf: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("members = %d, want 2 (owner and rejoined user)", len(members))
	}
}

// AddMember absorbs a duplicate join instead of violating the index.
func TestAddMemberIdempotent(t *testing.T) {
	store := NewGormStore(newTestDB(t))
	ctx := context.Background()

	project := &models.Project{Name: "board", OwnerID: 1}
	if err := store.CreateProjectWithOwner(ctx, project); err != nil {
		t.Fatalf("CreateProjectWithOwner: %v", err)
	}

	if err := store.AddMember(ctx, &models.ProjectMember{ProjectID: project.ID, UserID: 2}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := store.AddMember(ctx, &models.ProjectMember{ProjectID: project.ID, UserID: 2}); err != nil {
		t.Fatalf("double join: %v", err)
	}

	members, err := store.MembersOf(ctx, project.ID)
	if err != nil {
		t.Fatalf("MembersOf: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("members = %d, want 2", len(members))
	}
}

// A failed owner member insert must roll the project row back with it.
func TestCreateProjectWithOwnerRollsBack(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	// Occupy the slot the owner's member row will claim; the fresh table
	// hands the project id 1
	if err := db.Create(&models.ProjectMember{ProjectID: 1, UserID: 1}).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}

	project := &models.Project{Name: "doomed", OwnerID: 1}
	if err := store.CreateProjectWithOwner(ctx, project); err == nil {
		t.Fatal("expected the owner member insert to fail")
	}

	var count int64
	if err := db.Model(&models.Project{}).Count(&count).Error; err != nil {
		t.Fatalf("count projects: %v", err)
	}
	if count != 0 {
		t.Errorf("project rows = %d, want 0 after rollback", count)
	}
}

func TestDeleteProjectCascadeRemovesDependents(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	project := &models.Project{Name: "board", OwnerID: 1}
	if err := store.CreateProjectWithOwner(ctx, project); err != nil {
		t.Fatalf("CreateProjectWithOwner: %v", err)
	}
	task := &models.Task{Title: "card", Category: models.CategoryRequired, UserID: 1, ProjectID: project.ID}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	inv := &models.ProjectInvitation{ProjectID: project.ID, InvitedEmail: "c@d.com", InvitedBy: 1, Status: models.InvitationPending}
	if err := store.CreateInvitation(ctx, inv); err != nil {
		t.Fatalf("CreateInvitation: %v", err)
	}

	if err := store.DeleteProjectCascade(ctx, project.ID); err != nil {
		t.Fatalf("DeleteProjectCascade: %v", err)
	}

	if got, err := store.ProjectByID(ctx, project.ID); err != nil || got != nil {
		t.Errorf("ProjectByID = %v, %v, want nil, nil", got, err)
	}
	if got, err := store.TaskByID(ctx, task.ID); err != nil || got != nil {
		t.Errorf("TaskByID = %v, %v, want nil, nil", got, err)
	}
	if got, err := store.InvitationByID(ctx, inv.ID); err != nil || got != nil {
		t.Errorf("InvitationByID = %v, %v, want nil, nil", got, err)
	}
	members, err := store.MembersOf(ctx, project.ID)
	if err != nil || len(members) != 0 {
		t.Errorf("MembersOf = %v, %v, want empty", members, err)
	}
}
