package repositories

import (
	"veridesk/internal/models"

	"gorm.io/gorm"
)

// AuditRepository records onboarding status changes. Entries are
// append-only and survive profile deletion.
type AuditRepository interface {
	Create(entry *models.StatusAudit) error
	GetByMerchantID(merchantID uint) ([]models.StatusAudit, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(entry *models.StatusAudit) error {
	return r.db.Create(entry).Error
}

func (r *auditRepository) GetByMerchantID(merchantID uint) ([]models.StatusAudit, error) {
	var entries []models.StatusAudit
	err := r.db.Where("merchant_id = ?", merchantID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}
