// Package authz holds the permission rules for projects, tasks, team
// membership and invitations as pure functions over entity snapshots.
// Nothing here touches the database or the clock; callers load the rows
// and pass them in together with the acting user's id, so every rule is
// testable with synthetic ids.
package authz

import (
	"time"

	"sprintplanner/models"
)

// Reason explains a denial.
type Reason string

const (
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonNotOwner         Reason = "not_owner"
	ReasonNotMember        Reason = "not_member"
	ReasonOwnerCannotLeave Reason = "owner_cannot_leave"
	ReasonTargetIsOwner    Reason = "target_is_owner"
	ReasonNotInvited       Reason = "not_invited"
	ReasonNotPending       Reason = "not_pending"
	ReasonExpired          Reason = "expired"
	ReasonNotFound         Reason = "not_found"
)

// Verdict is the outcome of a permission check.
type Verdict struct {
	Allowed bool
	Reason  Reason
}

func allow() Verdict        { return Verdict{Allowed: true} }
func deny(r Reason) Verdict { return Verdict{Reason: r} }

// isMember reports whether userID appears in the member snapshot.
func isMember(userID uint, members []models.ProjectMember) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// onTeam treats the owner as an implicit member. The owner normally has a
// member row too, but the rule must not depend on that row existing.
func onTeam(userID uint, project *models.Project, members []models.ProjectMember) bool {
	return project.OwnerID == userID || isMember(userID, members)
}

// CanCreateProject allows any authenticated user.
func CanCreateProject(userID uint) Verdict {
	if userID == 0 {
		return deny(ReasonUnauthenticated)
	}
	return allow()
}

// CanMutateProject allows only the project owner to change name or
// description.
func CanMutateProject(userID uint, project *models.Project) Verdict {
	if userID == 0 {
		return deny(ReasonUnauthenticated)
	}
	if project == nil {
		return deny(ReasonNotFound)
	}
	if project.OwnerID != userID {
		return deny(ReasonNotOwner)
	}
	return allow()
}

// CanDeleteProject has the same rule as mutation: owner only.
func CanDeleteProject(userID uint, project *models.Project) Verdict {
	return CanMutateProject(userID, project)
}

// CanCreateTask allows the owner or any current member of the project.
func CanCreateTask(userID uint, project *models.Project, members []models.ProjectMember) Verdict {
	if userID == 0 {
		return deny(ReasonUnauthenticated)
	}
	if project == nil {
		return deny(ReasonNotFound)
	}
	if !onTeam(userID, project, members) {
		return deny(ReasonNotMember)
	}
	return allow()
}

// CanViewProject allows the owner or any current member to read a
// project and its board. Outsiders are told nothing, not even that the
// project exists.
func CanViewProject(userID uint, project *models.Project, members []models.ProjectMember) Verdict {
	return CanCreateTask(userID, project, members)
}

// CanMutateTaskCategory allows the owner or any current member of the
// task's project. Who created the task is irrelevant.
func CanMutateTaskCategory(userID uint, task *models.Task, project *models.Project, members []models.ProjectMember) Verdict {
	if userID == 0 {
		return deny(ReasonUnauthenticated)
	}
	if task == nil || project == nil {
		return deny(ReasonNotFound)
	}
	if !onTeam(userID, project, members) {
		return deny(ReasonNotMember)
	}
	return allow()
}

// CanDeleteTask allows any authenticated user as long as the task exists.
func CanDeleteTask(userID uint, task *models.Task) Verdict {
	if userID == 0 {
		return deny(ReasonUnauthenticated)
	}
	if task == nil {
		return deny(ReasonNotFound)
	}
	return allow()
}

// CanDeleteTaskAsMember is the stricter variant: the actor must be on the
// team of the task's project.
func CanDeleteTaskAsMember(userID uint, task *models.Task, project *models.Project, members []models.ProjectMember) Verdict {
	return CanMutateTaskCategory(userID, task, project, members)
}

// CanManageMembership covers adding/removing members and sending or
// revoking invitations: owner only.
func CanManageMembership(userID uint, project *models.Project) Verdict {
	return CanMutateProject(userID, project)
}

// CanRemoveMember checks an owner removing targetID from the team. The
// owner's own row is untouchable.
func CanRemoveMember(userID, targetID uint, project *models.Project) Verdict {
	if v := CanManageMembership(userID, project); !v.Allowed {
		return v
	}
	if targetID == project.OwnerID {
		return deny(ReasonTargetIsOwner)
	}
	return allow()
}

// CanLeaveTeam allows a member to remove themselves. The owner cannot
// leave their own project; they delete it instead.
func CanLeaveTeam(userID uint, project *models.Project, members []models.ProjectMember) Verdict {
	if userID == 0 {
		return deny(ReasonUnauthenticated)
	}
	if project == nil {
		return deny(ReasonNotFound)
	}
	if project.OwnerID == userID {
		return deny(ReasonOwnerCannotLeave)
	}
	if !isMember(userID, members) {
		return deny(ReasonNotMember)
	}
	return allow()
}

// CanRespondToInvitation checks an accept or decline: the invitation must
// still be pending, addressed to the actor's email, and inside its window.
// An expired pending invitation denies with ReasonExpired so the caller
// can flip the row to expired.
func CanRespondToInvitation(userID uint, inv *models.ProjectInvitation, userEmail string, now time.Time) Verdict {
	if userID == 0 {
		return deny(ReasonUnauthenticated)
	}
	if inv == nil {
		return deny(ReasonNotFound)
	}
	if inv.Status != models.InvitationPending {
		return deny(ReasonNotPending)
	}
	if inv.InvitedEmail != userEmail {
		return deny(ReasonNotInvited)
	}
	if inv.ExpiredAt(now) {
		return deny(ReasonExpired)
	}
	return allow()
}
