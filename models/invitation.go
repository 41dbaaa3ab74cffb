package models

import (
	"time"

	"gorm.io/gorm"
)

// InvitationStatus tracks the lifecycle of a project invitation.
// pending is the only non-terminal state.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

// InvitationTTL is how long an invitation stays answerable.
const InvitationTTL = 7 * 24 * time.Hour

// ProjectInvitation invites an email address onto a project team.
// At most one pending row may exist per (project, email).
type ProjectInvitation struct {
	gorm.Model
	ProjectID    uint             `gorm:"not null;index" json:"project_id"`
	InvitedEmail string           `gorm:"not null;index" json:"invited_email"`
	InvitedBy    uint             `gorm:"not null" json:"invited_by"`
	Status       InvitationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	ExpiresAt    time.Time        `gorm:"not null" json:"expires_at"`

	// Relations
	Project Project `json:"-"`
}

// ExpiredAt reports whether the invitation's window has closed at the
// given instant.
func (i *ProjectInvitation) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
