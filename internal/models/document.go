package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type MerchantDocument struct {
	gorm.Model
	MerchantID     uint   `gorm:"index;not null"`
	DocumentType   string `gorm:"not null"`
	FilePath       string `gorm:"not null"`
	FileName       string
	ContentType    string
	SizeBytes      int64
	ContentHash    string `gorm:"index"`
	Engine         string
	RawTextLength  int
	HolderName    string
	IDNumber      string // PAN verbatim; Aadhaar only ever in masked form
	DateOfBirth   string
	Gender        string
	OCRConfidence float64
	Confidence    float64
	NeedsReview   bool           `gorm:"default:false"`
	ReviewCode    string         // taxonomy code explaining the review flag
	Issues        pq.StringArray `gorm:"type:text[]"`
}
