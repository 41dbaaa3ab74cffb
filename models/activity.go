package models

import "gorm.io/gorm"

// Activity is a card on a user's personal board. Unlike a Task it has no
// project; only its owner can see or move it.
type Activity struct {
	gorm.Model
	Title    string       `gorm:"size:256;not null;index" json:"title"`
	Category TaskCategory `gorm:"type:varchar(32);not null" json:"category"`
	UserID   uint         `gorm:"not null;index" json:"user_id"`
}
