package repositories

import (
	"time"

	"veridesk/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	Create(n *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	GetByUserID(userID uint, limit, offset int) ([]models.Notification, error)
	MarkSent(id uint) error
	MarkFailed(id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) GetByUserID(userID uint, limit, offset int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkSent(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": "sent", "sent_at": &now}).Error
}

func (r *notificationRepository) MarkFailed(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("status", "failed").Error
}
