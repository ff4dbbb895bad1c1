package repositories

import (
	"errors"

	"veridesk/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("merchant profile not found")
	ErrVersionConflict = errors.New("profile version conflict")
)

// ProfileRepository defines the interface for merchant profile persistence
type ProfileRepository interface {
	Create(profile *models.MerchantProfile) error
	GetByID(id uint) (*models.MerchantProfile, error)
	GetByUserID(userID uint) (*models.MerchantProfile, error)
	Update(profile *models.MerchantProfile) error
	UpdateStatus(id uint, fromVersion int, updates map[string]interface{}) error
	Delete(id uint) error
	ListByStatus(status string, limit, offset int) ([]models.MerchantProfile, int64, error)
	ListByStatuses(statuses []string, limit, offset int) ([]models.MerchantProfile, int64, error)
	CountByStatus() (map[string]int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.MerchantProfile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) GetByID(id uint) (*models.MerchantProfile, error) {
	var profile models.MerchantProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(userID uint) (*models.MerchantProfile, error) {
	var profile models.MerchantProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *models.MerchantProfile) error {
	if profile.ID == 0 {
		return errors.New("cannot update profile with ID 0")
	}
	return r.db.Save(profile).Error
}

// UpdateStatus applies updates only when the stored version matches
// fromVersion, bumping the version in the same statement. A zero
// RowsAffected means another request changed the profile first.
func (r *profileRepository) UpdateStatus(id uint, fromVersion int, updates map[string]interface{}) error {
	updates["version"] = fromVersion + 1
	result := r.db.Model(&models.MerchantProfile{}).
		Where("id = ? AND version = ?", id, fromVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Delete removes the profile together with its documents and KYC
// record. Status audits are retained.
func (r *profileRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("merchant_id = ?", id).Delete(&models.MerchantDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("merchant_id = ?", id).Delete(&models.KYCRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.MerchantProfile{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProfileNotFound
		}
		return nil
	})
}

func (r *profileRepository) ListByStatus(status string, limit, offset int) ([]models.MerchantProfile, int64, error) {
	var profiles []models.MerchantProfile
	var total int64

	query := r.db.Model(&models.MerchantProfile{})
	if status != "" {
		query = query.Where("onboarding_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}

// ListByStatuses pages across several statuses in one query, so a
// review queue spanning two states paginates correctly.
func (r *profileRepository) ListByStatuses(statuses []string, limit, offset int) ([]models.MerchantProfile, int64, error) {
	var profiles []models.MerchantProfile
	var total int64

	query := r.db.Model(&models.MerchantProfile{}).
		Where("onboarding_status IN ?", statuses)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}

func (r *profileRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		OnboardingStatus string
		Count            int64
	}
	err := r.db.Model(&models.MerchantProfile{}).
		Select("onboarding_status, count(*) as count").
		Group("onboarding_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.OnboardingStatus] = row.Count
	}
	return counts, nil
}
