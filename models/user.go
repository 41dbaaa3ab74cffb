package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is an account that can sign in and own or join projects
type User struct {
	gorm.Model
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	AvatarURL    string  `json:"avatar_url"`
	GoogleID     *string `gorm:"index" json:"-"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	TokenVersion int     `gorm:"default:0" json:"-"`
}

// DisplayName joins the name parts, falling back to the email local part
// for accounts that never set a name.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
