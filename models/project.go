package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a shared kanban board owned by the user who created it
type Project struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`

	// Relations
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}

// ProjectMember links a user to a project. The owner always has a row of
// their own, created in the same transaction as the project. Rows are
// removed outright when a member leaves, so a later rejoin inserts a
// fresh row under the unique (project, user) index instead of colliding
// with a soft-deleted one.
type ProjectMember struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ProjectID uint      `gorm:"not null;index;uniqueIndex:idx_project_member" json:"project_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_project_member" json:"user_id"`

	// Relations
	Project Project `json:"-"`
	User    User    `json:"-"`
}
