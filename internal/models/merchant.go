package models

import (
	"time"
)

type MerchantProfile struct {
	ID                uint   `gorm:"primarykey"`
	UserID            uint   `gorm:"uniqueIndex;not null"`
	LegalName         string `gorm:"not null"`
	TradeName         string
	BusinessType      string `gorm:"not null"`
	CategoryCode      string
	GSTIN             string
	Address           string
	City              string
	State             string
	Pincode           string
	ContactEmail      string
	ContactPhone      string
	AccountNumber     string
	IFSC              string
	AccountHolder     string
	OnboardingStatus  string `gorm:"default:'draft';index"`
	Version           int    `gorm:"default:1"`
	RejectionReason   string
	BankApplicationID string
	BankResponse      JSON `gorm:"type:jsonb"`
	SubmittedAt       *time.Time
	ApprovedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProfileInput is the payload accepted when a merchant creates or
// updates their business profile.
type ProfileInput struct {
	LegalName     string `json:"legal_name"`
	TradeName     string `json:"trade_name"`
	BusinessType  string `json:"business_type"`
	CategoryCode  string `json:"category_code"`
	GSTIN         string `json:"gstin"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	AccountHolder string `json:"account_holder"`
}
