package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	Channel string `gorm:"default:'email'"`
	Subject string
	Body    string `gorm:"type:text"`
	Status  string `gorm:"default:'queued'"`
	SentAt  *time.Time
}
