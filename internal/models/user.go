package models

import (
	"time"
)

// User is owned by the identity provider; this service only reads it to
// resolve display names.
type User struct {
	ID        string  `json:"id" gorm:"primaryKey;size:255"`
	FullName  string  `json:"full_name" gorm:"not null;size:100"`
	Email     string  `json:"email" gorm:"size:255;index"`
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName falls back to the e-mail local part when no full name is set.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	for i, r := range u.Email {
		if r == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
