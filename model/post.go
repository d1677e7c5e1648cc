package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post 帖子表
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Image     *string   `json:"image,omitempty" gorm:"type:text"` // 图片外链，可空
	LikeCount int       `json:"like_count" gorm:"not null;default:0"`
	PostedAt  time.Time `json:"posted_at" gorm:"autoCreateTime"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Like 点赞表：(user_id, post_id) 唯一，一个用户对一个帖子最多赞一次
type Like struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_like_pair"`
	PostID  uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_like_pair"`
	LikedAt time.Time `json:"liked_at" gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Comment 评论表
type Comment struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PostID      uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CommentedAt time.Time `json:"commented_at" gorm:"autoCreateTime"`
}

func (Comment) TableName() string {
	return "comments"
}

func (cm *Comment) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	return nil
}
