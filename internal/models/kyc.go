package models

import (
	"time"

	"gorm.io/gorm"
)

type KYCRecord struct {
	gorm.Model
	MerchantID        uint   `gorm:"uniqueIndex;not null"`
	Status            string `gorm:"default:'pending'"`
	VideoKYCCompleted bool   `gorm:"default:false"`
	VideoKYCAt        *time.Time
	SelfieFilePath    string
	LocationCaptured  bool `gorm:"default:false"`
	Latitude          float64
	Longitude         float64
	AgentNotes        string
}
