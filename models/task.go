package models

import "gorm.io/gorm"

// TaskCategory is the kanban column a card currently occupies.
type TaskCategory string

const (
	CategoryRequired   TaskCategory = "Required"
	CategoryInProgress TaskCategory = "In_Progress"
	CategoryFinished   TaskCategory = "Finished"
)

// Valid reports whether c is one of the three known categories. Moves
// between categories are otherwise unconstrained; column adjacency is a
// client concern.
func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryRequired, CategoryInProgress, CategoryFinished:
		return true
	}
	return false
}

// Task is a card on a project board
type Task struct {
	gorm.Model
	Title     string       `gorm:"size:256;not null;index" json:"title"`
	Category  TaskCategory `gorm:"type:varchar(32);not null" json:"category"`
	UserID    uint         `gorm:"not null;index" json:"user_id"`
	ProjectID uint         `gorm:"not null;index" json:"project_id"`

	// Relations
	Project Project `json:"-"`
}
