package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Username            string     `json:"username" gorm:"uniqueIndex"`
	Email               string     `json:"email" gorm:"uniqueIndex"`
	PasswordHash        string     `json:"-"` // salted SHA-256 digest, never serialize
	Salt                string     `json:"-"` // empty for legacy unsalted records
	Role                string     `json:"role" gorm:"default:user"`
	LastLogin           *time.Time `json:"last_login" gorm:"index"`
	IsActive            bool       `json:"is_active" gorm:"default:true"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	AccountLockedUntil  *time.Time `json:"-"`
}

// UserInfo is the sanitized view of a User handed to the profile page.
// Hash and salt never leave the store.
type UserInfo struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
	IsActive  bool       `json:"is_active"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		IsActive:  u.IsActive,
	}
}
