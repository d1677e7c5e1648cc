package service

import (
	"encoding/json"
	"fmt"

	"umastagram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db          *gorm.DB
	hubNotifier HubNotifier
}

// HubNotifier 接口用于发送 WebSocket 通知
type HubNotifier interface {
	SendNotification(userID uuid.UUID, notification interface{}) bool
	IsUserOnline(userID uuid.UUID) bool
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// SetHubNotifier 设置 Hub 通知器（用于依赖注入）
func (s *NotificationService) SetHubNotifier(notifier HubNotifier) {
	s.hubNotifier = notifier
}

// CreateNotification 创建通知并推送给在线用户
func (s *NotificationService) CreateNotification(userID uuid.UUID, notifType, title string, metadata map[string]interface{}) (*model.Notification, error) {
	notification := &model.Notification{
		UserID:           userID,
		NotificationType: notifType,
		Title:            title,
		IsRead:           false,
	}

	// 序列化 metadata
	if metadata != nil {
		metadataBytes, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
		notification.Metadata = metadataBytes
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	// 只推送给在线用户
	if s.hubNotifier != nil && s.hubNotifier.IsUserOnline(userID) {
		s.hubNotifier.SendNotification(userID, notification)
	}

	return notification, nil
}

// GetNotifications 获取用户通知（新的在前）
func (s *NotificationService) GetNotifications(userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	return notifications, nil
}

// MarkAllAsRead 全部标记已读
func (s *NotificationService) MarkAllAsRead(userID uuid.UUID) error {
	err := s.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
