package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow 关注关系表
//
// 方向约定：UserID 关注 FriendID（user_id 是关注者，friend_id 是被关注者）。
// 关注不自动互相：(a,b) 和 (b,a) 是两条独立的边。
// (user_id, friend_id) 复合唯一索引由数据库兜底去重。
type Follow struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_pair"`
	FriendID      uuid.UUID `json:"friend_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_pair"`
	EstablishedAt time.Time `json:"established_at"` // 服务端写入，忽略调用方传值
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
