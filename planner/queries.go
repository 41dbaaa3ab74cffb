package planner

import (
	"context"

	"sprintplanner/authz"
	"sprintplanner/models"
)

// ProjectsForUser lists every project the actor owns or belongs to,
// tasks included.
func (s *Service) ProjectsForUser(ctx context.Context, actorID uint) ([]models.Project, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}
	projects, err := s.store.ProjectsForUser(ctx, actorID)
	if err != nil {
		return nil, StorageErr(err, "failed to list projects")
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// ProjectByID returns a project only to its owner or a current member.
// Anyone else gets not-found rather than forbidden, so the id space
// leaks nothing.
func (s *Service) ProjectByID(ctx context.Context, actorID, projectID uint) (*models.Project, error) {
	project, _, err := s.loadVisibleProject(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// TasksForProject lists the board of a project visible to the actor.
func (s *Service) TasksForProject(ctx context.Context, actorID, projectID uint) ([]models.Task, error) {
	if _, _, err := s.loadVisibleProject(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.store.TasksForProject(ctx, projectID)
	if err != nil {
		return nil, StorageErr(err, "failed to list tasks")
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// MyTasks lists every board task the actor created, newest first.
func (s *Service) MyTasks(ctx context.Context, actorID uint) ([]models.Task, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}
	tasks, err := s.store.TasksForUser(ctx, actorID)
	if err != nil {
		return nil, StorageErr(err, "failed to list tasks")
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// MyActivities lists the actor's personal board.
func (s *Service) MyActivities(ctx context.Context, actorID uint) ([]models.Activity, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}
	activities, err := s.store.ActivitiesForUser(ctx, actorID)
	if err != nil {
		return nil, StorageErr(err, "failed to list activities")
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return activities, nil
}

// TeamMembers resolves the project's member rows to profiles. Members
// whose accounts have since vanished are skipped; an empty team is an
// empty list, not an error.
func (s *Service) TeamMembers(ctx context.Context, actorID, projectID uint) ([]Profile, error) {
	_, members, err := s.loadVisibleProject(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(members))
	for _, m := range members {
		profile, err := s.users.ProfileByID(ctx, m.UserID)
		if err != nil {
			return nil, StorageErr(err, "failed to resolve team member")
		}
		if profile == nil {
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// InvitationsForProject lists a project's invitations. Owner only.
func (s *Service) InvitationsForProject(ctx context.Context, actorID, projectID uint) ([]models.ProjectInvitation, error) {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, StorageErr(err, "failed to load project")
	}
	if project == nil {
		return nil, Errf(KindNotFound, "project %d not found", projectID)
	}
	if v := authz.CanManageMembership(actorID, project); !v.Allowed {
		return nil, verdictErr(v)
	}

	invitations, err := s.store.InvitationsForProject(ctx, projectID)
	if err != nil {
		return nil, StorageErr(err, "failed to list invitations")
	}
	if invitations == nil {
		invitations = []models.ProjectInvitation{}
	}
	return invitations, nil
}

// MyInvitations lists pending invitations addressed to the actor's email.
func (s *Service) MyInvitations(ctx context.Context, actorID uint) ([]models.ProjectInvitation, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}
	profile, err := s.users.ProfileByID(ctx, actorID)
	if err != nil {
		return nil, StorageErr(err, "failed to load profile")
	}
	if profile == nil {
		return nil, Errf(KindUnauthenticated, "unknown user")
	}

	invitations, err := s.store.PendingInvitationsForEmail(ctx, profile.Email)
	if err != nil {
		return nil, StorageErr(err, "failed to list invitations")
	}
	if invitations == nil {
		invitations = []models.ProjectInvitation{}
	}
	return invitations, nil
}

// loadVisibleProject loads a project and its member rows and applies the
// membership visibility rule. Denials surface as not-found.
func (s *Service) loadVisibleProject(ctx context.Context, actorID, projectID uint) (*models.Project, []models.ProjectMember, error) {
	if actorID == 0 {
		return nil, nil, Errf(KindUnauthenticated, "sign in required")
	}
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, nil, StorageErr(err, "failed to load project")
	}
	if project == nil {
		return nil, nil, Errf(KindNotFound, "project %d not found", projectID)
	}
	members, err := s.store.MembersOf(ctx, projectID)
	if err != nil {
		return nil, nil, StorageErr(err, "failed to load team")
	}
	if v := authz.CanViewProject(actorID, project, members); !v.Allowed {
		return nil, nil, Errf(KindNotFound, "project %d not found", projectID)
	}
	return project, members, nil
}
