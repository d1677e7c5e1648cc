package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification 通知表
type Notification struct {
	ID               uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	NotificationType string          `json:"notification_type" gorm:"type:varchar(50);not null"` // 'friend_request' | 'follow_accepted' | 'like'
	Title            string          `json:"title" gorm:"type:varchar(255);not null"`
	Metadata         json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`
	IsRead           bool            `json:"is_read" gorm:"default:false"`
	CreatedAt        time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
