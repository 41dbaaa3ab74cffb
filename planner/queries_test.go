package planner

import (
	"context"
	"testing"

	"sprintplanner/models"
)

func TestProjectByIDVisibility(t *testing.T) {
	store := &mockStore{
		ProjectByIDFunc: func(ctx context.Context, id uint) (*models.Project, error) {
			return ownedProject(id, 1), nil
		},
		MembersOfFunc: func(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
			return teamOf(1, 2), nil
		},
	}
	s := newTestService(store, &mockDirectory{})

	if _, err := s.ProjectByID(context.Background(), 2, 10); err != nil {
		t.Errorf("member denied: %v", err)
	}

	// Outsiders get not-found, never forbidden
	_, err := s.ProjectByID(context.Background(), 3, 10)
	if KindOf(err) != KindNotFound {
		t.Errorf("kind = %v, want %v", KindOf(err), KindNotFound)
	}
}

func TestProjectsForUserEmpty(t *testing.T) {
	s := newTestService(&mockStore{}, &mockDirectory{})

	projects, err := s.ProjectsForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ProjectsForUser: %v", err)
	}
	if projects == nil || len(projects) != 0 {
		t.Errorf("projects = %v, want empty slice", projects)
	}
}

func TestTasksForProjectRequiresVisibility(t *testing.T) {
	store := &mockStore{
		ProjectByIDFunc: func(ctx context.Context, id uint) (*models.Project, error) {
			return ownedProject(id, 1), nil
		},
		MembersOfFunc: func(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
			return teamOf(1), nil
		},
		TasksForProjectFunc: func(ctx context.Context, projectID uint) ([]models.Task, error) {
			return []models.Task{{Title: "a"}}, nil
		},
	}
	s := newTestService(store, &mockDirectory{})

	tasks, err := s.TasksForProject(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("owner listing: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("tasks = %v", tasks)
	}

	if _, err := s.TasksForProject(context.Background(), 9, 10); KindOf(err) != KindNotFound {
		t.Errorf("kind = %v, want %v", KindOf(err), KindNotFound)
	}
}

func TestTeamMembersSkipsVanishedProfiles(t *testing.T) {
	store := &mockStore{
		ProjectByIDFunc: func(ctx context.Context, id uint) (*models.Project, error) {
			return ownedProject(id, 1), nil
		},
		MembersOfFunc: func(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
			return teamOf(1, 2, 3), nil
		},
	}
	users := &mockDirectory{
		ProfileByIDFunc: func(ctx context.Context, id uint) (*Profile, error) {
			if id == 2 {
				return nil, nil // account deleted after joining
			}
			return &Profile{ID: id}, nil
		},
	}
	s := newTestService(store, users)

	profiles, err := s.TeamMembers(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("TeamMembers: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("profiles = %v, want 2 entries", profiles)
	}
	if profiles[0].ID != 1 || profiles[1].ID != 3 {
		t.Errorf("profile ids = %d, %d", profiles[0].ID, profiles[1].ID)
	}
}

func TestInvitationsForProjectOwnerOnly(t *testing.T) {
	store := &mockStore{
		ProjectByIDFunc: func(ctx context.Context, id uint) (*models.Project, error) {
			return ownedProject(id, 1), nil
		},
		InvitationsForProjectFunc: func(ctx context.Context, projectID uint) ([]models.ProjectInvitation, error) {
			return []models.ProjectInvitation{{ProjectID: projectID}}, nil
		},
	}
	s := newTestService(store, &mockDirectory{})

	if _, err := s.InvitationsForProject(context.Background(), 1, 10); err != nil {
		t.Errorf("owner denied: %v", err)
	}
	if _, err := s.InvitationsForProject(context.Background(), 2, 10); KindOf(err) != KindForbidden {
		t.Errorf("kind = %v, want %v", KindOf(err), KindForbidden)
	}
}

func TestMyInvitationsResolvesEmail(t *testing.T) {
	var queriedEmail string
	store := &mockStore{
		PendingInvitationsForEmailFunc: func(ctx context.Context, email string) ([]models.ProjectInvitation, error) {
			queriedEmail = email
			return nil, nil
		},
	}
	users := &mockDirectory{
		ProfileByIDFunc: func(ctx context.Context, id uint) (*Profile, error) {
			return &Profile{ID: id, Email: "me@example.com"}, nil
		},
	}
	s := newTestService(store, users)

	invitations, err := s.MyInvitations(context.Background(), 5)
	if err != nil {
		t.Fatalf("MyInvitations: %v", err)
	}
	if queriedEmail != "me@example.com" {
		t.Errorf("queried email = %q", queriedEmail)
	}
	if invitations == nil {
		t.Error("nil slice returned")
	}
}

func TestMyActivitiesRequiresAuth(t *testing.T) {
	s := newTestService(&mockStore{}, &mockDirectory{})

	if _, err := s.MyActivities(context.Background(), 0); KindOf(err) != KindUnauthenticated {
		t.Errorf("kind = %v, want %v", KindOf(err), KindUnauthenticated)
	}
}
