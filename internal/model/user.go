package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Column names match the original
// `users` table so existing data stays valid.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Surname      string         `json:"surname" gorm:"size:255;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Phone        string         `json:"phone" gorm:"size:255;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Deleted      gorm.DeletedAt `json:"-" gorm:"column:deleted;index"`
}

// Profile is the public view of a user returned by the API.
type Profile struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// Profile strips everything a caller must not see, in particular the
// password hash and the soft-delete marker.
func (u *User) Profile() Profile {
	return Profile{
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Phone:   u.Phone,
	}
}
