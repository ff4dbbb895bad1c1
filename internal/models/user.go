package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"` // Unique index on Email
	Password            string `gorm:"not null"`
	Name                string `gorm:"not null"`
	Phone               string `gorm:"uniqueIndex;not null"` // Unique index on Phone
	Role                string `gorm:"default:'merchant'"`
	Status              string `gorm:"default:'active'"`
	LastLoginAt         time.Time
	LastLoginIP         string
	FailedLoginAttempts int `gorm:"default:0"`
	AccountLockoutUntil *time.Time
	TokenVersion        int `gorm:"default:1"`
}

// CreateUserInput is the payload accepted at registration.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
