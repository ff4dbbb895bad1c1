package repositories

import (
	"errors"

	"veridesk/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository defines the interface for merchant document persistence
type DocumentRepository interface {
	Create(doc *models.MerchantDocument) error
	GetByID(id uint) (*models.MerchantDocument, error)
	GetByMerchantID(merchantID uint) ([]models.MerchantDocument, error)
	GetByMerchantAndType(merchantID uint, docType string) (*models.MerchantDocument, error)
	Update(doc *models.MerchantDocument) error
	Delete(id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *models.MerchantDocument) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) GetByID(id uint) (*models.MerchantDocument, error) {
	var doc models.MerchantDocument
	if err := r.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) GetByMerchantID(merchantID uint) ([]models.MerchantDocument, error) {
	var docs []models.MerchantDocument
	err := r.db.Where("merchant_id = ?", merchantID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentRepository) GetByMerchantAndType(merchantID uint, docType string) (*models.MerchantDocument, error) {
	var doc models.MerchantDocument
	err := r.db.Where("merchant_id = ? AND document_type = ?", merchantID, docType).
		Order("created_at DESC").First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Update(doc *models.MerchantDocument) error {
	return r.db.Save(doc).Error
}

func (r *documentRepository) Delete(id uint) error {
	result := r.db.Delete(&models.MerchantDocument{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
