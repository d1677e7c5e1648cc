package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Uma 赛马娘图鉴表（只读参考数据）
type Uma struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	ImageLink string     `json:"image_link" gorm:"type:text;not null"`
	IconLink  *string    `json:"icon_link,omitempty" gorm:"type:varchar(255)"`
	Birthday  *time.Time `json:"birthday,omitempty" gorm:"type:date"`
	FunFact   *string    `json:"fun_fact,omitempty" gorm:"type:varchar(255)"`
	Bio       *string    `json:"bio,omitempty" gorm:"type:varchar(255)"`
}

func (Uma) TableName() string {
	return "umas"
}

func (u *Uma) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
