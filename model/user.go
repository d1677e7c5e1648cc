package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GithubID       *string   `json:"github_id,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	GithubUsername *string   `json:"github_username,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	Username       string    `json:"username" gorm:"type:varchar(255);not null;uniqueIndex"`
	Email          string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Password       string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt 哈希，永不下发
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
