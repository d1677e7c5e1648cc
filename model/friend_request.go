package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendRequest 待处理好友申请表
//
// 记录的存在本身就表示"待处理"，没有状态列：
// 申请被接受或撤回时整行删除。
// (requester_id, target_id) 复合唯一索引保证同一有序对最多一条申请，
// 反向对 (target_id, requester_id) 是独立的另一条申请。
type FriendRequest struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `json:"requester_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_friend_request_pair"`
	TargetID    uuid.UUID `json:"target_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_friend_request_pair"`
	RequestedAt time.Time `json:"requested_at" gorm:"autoCreateTime"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (fr *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if fr.ID == uuid.Nil {
		fr.ID = uuid.New()
	}
	return nil
}
