package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Horse 原型马图鉴表（只读参考数据）
type Horse struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	ImageLink   string     `json:"image_link" gorm:"type:text;not null"`
	Birthday    *time.Time `json:"birthday,omitempty" gorm:"type:date"`
	Deathday    *time.Time `json:"deathday,omitempty" gorm:"type:date"`
	Description *string    `json:"description,omitempty" gorm:"type:varchar(255)"`
}

func (Horse) TableName() string {
	return "horses"
}

func (h *Horse) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
