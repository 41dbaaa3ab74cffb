package planner

import (
	"context"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"

	"sprintplanner/authz"
	"sprintplanner/models"
	"sprintplanner/utils"
)

type CreateProjectInput struct {
	Name        string  `json:"name" validate:"required,max=256"`
	Description *string `json:"description"`
}

type CreateTaskInput struct {
	Title     string              `json:"title" validate:"required,max=256"`
	Category  models.TaskCategory `json:"category" validate:"required"`
	ProjectID uint                `json:"project_id" validate:"required"`
}

type CreateActivityInput struct {
	Title    string              `json:"title" validate:"required,max=256"`
	Category models.TaskCategory `json:"category" validate:"required"`
}

// verdictErr translates a denial into the matching error kind.
func verdictErr(v authz.Verdict) *Error {
	switch v.Reason {
	case authz.ReasonUnauthenticated:
		return Errf(KindUnauthenticated, "sign in required")
	case authz.ReasonNotFound:
		return Errf(KindNotFound, "not found")
	case authz.ReasonNotPending:
		return Errf(KindInvalidState, "invitation is no longer pending")
	case authz.ReasonExpired:
		return Errf(KindInvalidState, "invitation has expired")
	default:
		return Errf(KindForbidden, "you do not have permission to do that")
	}
}

// CreateProject inserts a project with the actor as owner and first
// member. The two rows are written atomically; a failed member insert
// rolls the project back.
func (s *Service) CreateProject(ctx context.Context, actorID uint, in CreateProjectInput) (*models.Project, error) {
	if v := authz.CanCreateProject(actorID); !v.Allowed {
		return nil, verdictErr(v)
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, Errf(KindInvalidInput, "%s", err.Error())
	}

	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     actorID,
	}
	if err := s.store.CreateProjectWithOwner(ctx, project); err != nil {
		return nil, StorageErr(err, "failed to create project")
	}

	s.log.WithFields(logrus.Fields{
		"project_id": project.ID,
		"owner_id":   actorID,
	}).Info("project created")
	return project, nil
}

// UpdateProject applies a partial name/description change. Absent fields
// are left alone; sending neither is an input error.
func (s *Service) UpdateProject(ctx context.Context, actorID, projectID uint, name, description *string) (*models.Project, error) {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, StorageErr(err, "failed to load project")
	}
	if project == nil {
		return nil, Errf(KindNotFound, "project %d not found", projectID)
	}
	if v := authz.CanMutateProject(actorID, project); !v.Allowed {
		return nil, verdictErr(v)
	}

	fields := map[string]interface{}{}
	if name != nil {
		if *name == "" {
			return nil, Errf(KindInvalidInput, "name must not be empty")
		}
		if len(*name) > 256 {
			return nil, Errf(KindInvalidInput, "name must be at most 256 characters")
		}
		fields["name"] = *name
		project.Name = *name
	}
	if description != nil {
		fields["description"] = *description
		project.Description = description
	}
	if len(fields) == 0 {
		return nil, Errf(KindInvalidInput, "nothing to update")
	}

	if err := s.store.UpdateProject(ctx, projectID, fields); err != nil {
		return nil, StorageErr(err, "failed to update project")
	}
	return project, nil
}

// DeleteProject removes a project and everything hanging off it: tasks,
// member rows and invitations. Owner only.
func (s *Service) DeleteProject(ctx context.Context, actorID, projectID uint) error {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return StorageErr(err, "failed to load project")
	}
	if project == nil {
		return Errf(KindNotFound, "project %d not found", projectID)
	}
	if v := authz.CanDeleteProject(actorID, project); !v.Allowed {
		return verdictErr(v)
	}

	if err := s.store.DeleteProjectCascade(ctx, projectID); err != nil {
		return StorageErr(err, "failed to delete project")
	}

	s.log.WithFields(logrus.Fields{
		"project_id": projectID,
		"owner_id":   actorID,
	}).Info("project deleted")
	return nil
}

// CreateTask adds a card to a project board. Owner or member only.
func (s *Service) CreateTask(ctx context.Context, actorID uint, in CreateTaskInput) (*models.Task, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, Errf(KindInvalidInput, "%s", err.Error())
	}
	if !in.Category.Valid() {
		return nil, Errf(KindInvalidInput, "invalid category %q", in.Category)
	}

	project, err := s.store.ProjectByID(ctx, in.ProjectID)
	if err != nil {
		return nil, StorageErr(err, "failed to load project")
	}
	if project == nil {
		return nil, Errf(KindNotFound, "project %d not found", in.ProjectID)
	}
	members, err := s.store.MembersOf(ctx, in.ProjectID)
	if err != nil {
		return nil, StorageErr(err, "failed to load team")
	}
	if v := authz.CanCreateTask(actorID, project, members); !v.Allowed {
		return nil, verdictErr(v)
	}

	task := &models.Task{
		Title:     in.Title,
		Category:  in.Category,
		UserID:    actorID,
		ProjectID: in.ProjectID,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, StorageErr(err, "failed to create task")
	}
	return task, nil
}

// UpdateTaskCategory moves a card to any of the three columns. The
// target only has to be a known category; no adjacency rule applies.
func (s *Service) UpdateTaskCategory(ctx context.Context, actorID, taskID uint, category models.TaskCategory) (*models.Task, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}
	if !category.Valid() {
		return nil, Errf(KindInvalidInput, "invalid category %q", category)
	}

	task, err := s.store.TaskByID(ctx, taskID)
	if err != nil {
		return nil, StorageErr(err, "failed to load task")
	}
	if task == nil {
		return nil, Errf(KindNotFound, "task %d not found", taskID)
	}
	project, err := s.store.ProjectByID(ctx, task.ProjectID)
	if err != nil {
		return nil, StorageErr(err, "failed to load project")
	}
	members, err := s.store.MembersOf(ctx, task.ProjectID)
	if err != nil {
		return nil, StorageErr(err, "failed to load team")
	}
	if v := authz.CanMutateTaskCategory(actorID, task, project, members); !v.Allowed {
		return nil, verdictErr(v)
	}

	if err := s.store.UpdateTaskCategory(ctx, taskID, category); err != nil {
		return nil, StorageErr(err, "failed to update task")
	}
	task.Category = category
	return task, nil
}

// DeleteTask removes a card, subject to the configured policy.
func (s *Service) DeleteTask(ctx context.Context, actorID, taskID uint) error {
	task, err := s.store.TaskByID(ctx, taskID)
	if err != nil {
		return StorageErr(err, "failed to load task")
	}
	if task == nil {
		return Errf(KindNotFound, "task %d not found", taskID)
	}

	switch s.taskDelete {
	case TaskDeleteAnyUser:
		if v := authz.CanDeleteTask(actorID, task); !v.Allowed {
			return verdictErr(v)
		}
	default:
		project, err := s.store.ProjectByID(ctx, task.ProjectID)
		if err != nil {
			return StorageErr(err, "failed to load project")
		}
		members, err := s.store.MembersOf(ctx, task.ProjectID)
		if err != nil {
			return StorageErr(err, "failed to load team")
		}
		if v := authz.CanDeleteTaskAsMember(actorID, task, project, members); !v.Allowed {
			return verdictErr(v)
		}
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return StorageErr(err, "failed to delete task")
	}
	return nil
}

// AddTeamMember puts a registered user straight onto the team, no
// invitation round trip. Owner only.
func (s *Service) AddTeamMember(ctx context.Context, actorID, projectID uint, email string) error {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return StorageErr(err, "failed to load project")
	}
	if project == nil {
		return Errf(KindNotFound, "project %d not found", projectID)
	}
	if v := authz.CanManageMembership(actorID, project); !v.Allowed {
		return verdictErr(v)
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return Errf(KindInvalidInput, "invalid email address")
	}

	invitee, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return StorageErr(err, "failed to look up user")
	}
	if invitee == nil {
		return Errf(KindNotFound, "no account registered for %s", email)
	}

	members, err := s.store.MembersOf(ctx, projectID)
	if err != nil {
		return StorageErr(err, "failed to load team")
	}
	for _, m := range members {
		if m.UserID == invitee.ID {
			return Errf(KindConflict, "%s is already on the team", email)
		}
	}
	if invitee.ID == project.OwnerID {
		return Errf(KindConflict, "%s is already on the team", email)
	}

	member := &models.ProjectMember{ProjectID: projectID, UserID: invitee.ID}
	if err := s.store.AddMember(ctx, member); err != nil {
		return StorageErr(err, "failed to add team member")
	}
	return nil
}

// InviteTeamMember creates a pending invitation with a 7-day window.
// Duplicate pending invitations and existing memberships are conflicts.
func (s *Service) InviteTeamMember(ctx context.Context, actorID, projectID uint, email string) (*models.ProjectInvitation, error) {
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
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, Errf(KindInvalidInput, "invalid email address")
	}

	invitee, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, StorageErr(err, "failed to look up user")
	}
	if invitee == nil {
		return nil, Errf(KindNotFound, "no account registered for %s", email)
	}

	if invitee.ID == project.OwnerID {
		return nil, Errf(KindConflict, "%s is already on the team", email)
	}
	members, err := s.store.MembersOf(ctx, projectID)
	if err != nil {
		return nil, StorageErr(err, "failed to load team")
	}
	for _, m := range members {
		if m.UserID == invitee.ID {
			return nil, Errf(KindConflict, "%s is already on the team", email)
		}
	}

	pending, err := s.store.PendingInvitation(ctx, projectID, email)
	if err != nil {
		return nil, StorageErr(err, "failed to check invitations")
	}
	if pending != nil {
		return nil, Errf(KindConflict, "an invitation for %s is already pending", email)
	}

	inv := &models.ProjectInvitation{
		ProjectID:    projectID,
		InvitedEmail: email,
		InvitedBy:    actorID,
		Status:       models.InvitationPending,
		ExpiresAt:    s.now().Add(models.InvitationTTL),
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		return nil, StorageErr(err, "failed to create invitation")
	}

	s.log.WithFields(logrus.Fields{
		"project_id": projectID,
		"email":      email,
	}).Info("invitation created")
	return inv, nil
}

// RemoveInvitation revokes an invitation. Owner of the project only.
func (s *Service) RemoveInvitation(ctx context.Context, actorID, invitationID uint) error {
	inv, err := s.store.InvitationByID(ctx, invitationID)
	if err != nil {
		return StorageErr(err, "failed to load invitation")
	}
	if inv == nil {
		return Errf(KindNotFound, "invitation %d not found", invitationID)
	}
	project, err := s.store.ProjectByID(ctx, inv.ProjectID)
	if err != nil {
		return StorageErr(err, "failed to load project")
	}
	if project == nil {
		return Errf(KindNotFound, "project %d not found", inv.ProjectID)
	}
	if v := authz.CanManageMembership(actorID, project); !v.Allowed {
		return verdictErr(v)
	}

	if err := s.store.DeleteInvitation(ctx, invitationID); err != nil {
		return StorageErr(err, "failed to remove invitation")
	}
	return nil
}

// DeleteTeamMember removes a member from the team. Owner only, and the
// owner's own row cannot be removed.
func (s *Service) DeleteTeamMember(ctx context.Context, actorID, projectID, targetID uint) error {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return StorageErr(err, "failed to load project")
	}
	if project == nil {
		return Errf(KindNotFound, "project %d not found", projectID)
	}
	if v := authz.CanRemoveMember(actorID, targetID, project); !v.Allowed {
		return verdictErr(v)
	}

	members, err := s.store.MembersOf(ctx, projectID)
	if err != nil {
		return StorageErr(err, "failed to load team")
	}
	found := false
	for _, m := range members {
		if m.UserID == targetID {
			found = true
			break
		}
	}
	if !found {
		return Errf(KindNotFound, "user %d is not on the team", targetID)
	}

	if err := s.store.RemoveMember(ctx, projectID, targetID); err != nil {
		return StorageErr(err, "failed to remove team member")
	}
	return nil
}

// LeaveTeam removes the actor's own membership. Owners cannot leave.
func (s *Service) LeaveTeam(ctx context.Context, actorID, projectID uint) error {
	project, err := s.store.ProjectByID(ctx, projectID)
	if err != nil {
		return StorageErr(err, "failed to load project")
	}
	if project == nil {
		return Errf(KindNotFound, "project %d not found", projectID)
	}
	members, err := s.store.MembersOf(ctx, projectID)
	if err != nil {
		return StorageErr(err, "failed to load team")
	}
	if v := authz.CanLeaveTeam(actorID, project, members); !v.Allowed {
		return verdictErr(v)
	}

	if err := s.store.RemoveMember(ctx, projectID, actorID); err != nil {
		return StorageErr(err, "failed to leave team")
	}
	return nil
}

// AcceptInvitation adds the actor to the team and marks the invitation
// accepted. The member row is written first so a failed join leaves the
// invitation pending rather than consumed. A pending invitation past its
// window is flipped to expired and the accept fails with InvalidState;
// no member row is written.
func (s *Service) AcceptInvitation(ctx context.Context, actorID, invitationID uint) error {
	inv, profile, err := s.loadInvitationResponse(ctx, actorID, invitationID)
	if err != nil {
		return err
	}

	if v := authz.CanRespondToInvitation(actorID, inv, profile.Email, s.now()); !v.Allowed {
		if v.Reason == authz.ReasonExpired {
			if serr := s.store.SetInvitationStatus(ctx, invitationID, models.InvitationExpired); serr != nil {
				return StorageErr(serr, "failed to expire invitation")
			}
		}
		return verdictErr(v)
	}

	member := &models.ProjectMember{ProjectID: inv.ProjectID, UserID: actorID}
	if err := s.store.AddMember(ctx, member); err != nil {
		return StorageErr(err, "failed to join team")
	}
	if err := s.store.SetInvitationStatus(ctx, invitationID, models.InvitationAccepted); err != nil {
		return StorageErr(err, "failed to accept invitation")
	}

	s.log.WithFields(logrus.Fields{
		"project_id":    inv.ProjectID,
		"invitation_id": invitationID,
		"user_id":       actorID,
	}).Info("invitation accepted")
	return nil
}

// DeclineInvitation marks the invitation declined. Terminal; it can never
// go back to pending.
func (s *Service) DeclineInvitation(ctx context.Context, actorID, invitationID uint) error {
	inv, profile, err := s.loadInvitationResponse(ctx, actorID, invitationID)
	if err != nil {
		return err
	}

	if v := authz.CanRespondToInvitation(actorID, inv, profile.Email, s.now()); !v.Allowed {
		if v.Reason == authz.ReasonExpired {
			if serr := s.store.SetInvitationStatus(ctx, invitationID, models.InvitationExpired); serr != nil {
				return StorageErr(serr, "failed to expire invitation")
			}
		}
		return verdictErr(v)
	}

	if err := s.store.SetInvitationStatus(ctx, invitationID, models.InvitationDeclined); err != nil {
		return StorageErr(err, "failed to decline invitation")
	}
	return nil
}

func (s *Service) loadInvitationResponse(ctx context.Context, actorID, invitationID uint) (*models.ProjectInvitation, *Profile, error) {
	if actorID == 0 {
		return nil, nil, Errf(KindUnauthenticated, "sign in required")
	}
	inv, err := s.store.InvitationByID(ctx, invitationID)
	if err != nil {
		return nil, nil, StorageErr(err, "failed to load invitation")
	}
	if inv == nil {
		return nil, nil, Errf(KindNotFound, "invitation %d not found", invitationID)
	}
	profile, err := s.users.ProfileByID(ctx, actorID)
	if err != nil {
		return nil, nil, StorageErr(err, "failed to load profile")
	}
	if profile == nil {
		return nil, nil, Errf(KindUnauthenticated, "unknown user")
	}
	return inv, profile, nil
}

// CreateActivity adds a card to the actor's personal board.
func (s *Service) CreateActivity(ctx context.Context, actorID uint, in CreateActivityInput) (*models.Activity, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, Errf(KindInvalidInput, "%s", err.Error())
	}
	if !in.Category.Valid() {
		return nil, Errf(KindInvalidInput, "invalid category %q", in.Category)
	}

	activity := &models.Activity{Title: in.Title, Category: in.Category, UserID: actorID}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, StorageErr(err, "failed to create activity")
	}
	return activity, nil
}

// UpdateActivityCategory moves a personal card. A card that does not
// exist or belongs to someone else reads as not found, so the endpoint
// never reveals other users' cards.
func (s *Service) UpdateActivityCategory(ctx context.Context, actorID, activityID uint, category models.TaskCategory) (*models.Activity, error) {
	if actorID == 0 {
		return nil, Errf(KindUnauthenticated, "sign in required")
	}

	activity, err := s.store.ActivityByID(ctx, activityID)
	if err != nil {
		return nil, StorageErr(err, "failed to load activity")
	}
	if activity == nil || activity.UserID != actorID {
		return nil, Errf(KindNotFound, "activity %d not found", activityID)
	}
	if !category.Valid() {
		return nil, Errf(KindInvalidInput, "invalid category %q", category)
	}

	if err := s.store.UpdateActivityCategory(ctx, activityID, category); err != nil {
		return nil, StorageErr(err, "failed to update activity")
	}
	activity.Category = category
	return activity, nil
}

// DeleteActivity removes a personal card. Owner only, same visibility
// rule as updates.
func (s *Service) DeleteActivity(ctx context.Context, actorID, activityID uint) error {
	if actorID == 0 {
		return Errf(KindUnauthenticated, "sign in required")
	}

	activity, err := s.store.ActivityByID(ctx, activityID)
	if err != nil {
		return StorageErr(err, "failed to load activity")
	}
	if activity == nil || activity.UserID != actorID {
		return Errf(KindNotFound, "activity %d not found", activityID)
	}

	if err := s.store.DeleteActivity(ctx, activityID); err != nil {
		return StorageErr(err, "failed to delete activity")
	}
	return nil
}
