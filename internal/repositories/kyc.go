package repositories

import (
	"errors"

	"veridesk/internal/models"

	"gorm.io/gorm"
)

var ErrKYCNotFound = errors.New("kyc record not found")

// KYCRepository defines the interface for KYC record persistence
type KYCRepository interface {
	Create(record *models.KYCRecord) error
	GetByMerchantID(merchantID uint) (*models.KYCRecord, error)
	Update(record *models.KYCRecord) error
}

type kycRepository struct {
	db *gorm.DB
}

func NewKYCRepository(db *gorm.DB) KYCRepository {
	return &kycRepository{db: db}
}

func (r *kycRepository) Create(record *models.KYCRecord) error {
	return r.db.Create(record).Error
}

func (r *kycRepository) GetByMerchantID(merchantID uint) (*models.KYCRecord, error) {
	var record models.KYCRecord
	if err := r.db.Where("merchant_id = ?", merchantID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKYCNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *kycRepository) Update(record *models.KYCRecord) error {
	return r.db.Save(record).Error
}
