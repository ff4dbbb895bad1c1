package models

import "gorm.io/gorm"

type StatusAudit struct {
	gorm.Model
	MerchantID     uint   `gorm:"index;not null"`
	PreviousStatus string `gorm:"not null"`
	NewStatus      string `gorm:"not null"`
	Actor          string `gorm:"not null"`
	ActorRole      string
	Notes          string
	Override       bool `gorm:"default:false"`
}
