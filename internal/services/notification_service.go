package services

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify writes an in-app notification. Failures are logged, not surfaced;
// a missed notification never fails the workflow that triggered it.
func (s *NotificationService) Notify(userID uuid.UUID, message string) {
	n := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
	}
	if err := s.db.Create(&n).Error; err != nil {
		slog.Error("failed to create notification", "error", err, "user_id", userID)
	}
}

func (s *NotificationService) List(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(100).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}
