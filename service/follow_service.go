package service

import (
	"errors"
	"fmt"
	"time"

	"umastagram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowService 管理关注边。
//
// 方向约定：Follow{UserID, FriendID} 表示 UserID 关注 FriendID。
// AcceptFriendRequest(requesterID, targetID) 与申请同序：
// 删除 (requesterID, targetID) 的待处理申请，建立 requesterID → targetID 的关注，
// 即申请人成为被申请人的关注者。
type FollowService struct {
	db      *gorm.DB
	userSvc *UserService
}

func NewFollowService(db *gorm.DB, userSvc *UserService) *FollowService {
	return &FollowService{db: db, userSvc: userSvc}
}

// SaveFollow 保存关注边
//
// 同一有序对已存在时返回 ErrDuplicateFollow；
// EstablishedAt 一律由服务端写当前时间，调用方传值被忽略。
func (s *FollowService) SaveFollow(follow *model.Follow) (*model.Follow, error) {
	if err := s.saveFollowTx(s.db, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// saveFollowTx 在给定的 db/tx 上执行保存，供 AcceptFriendRequest 复用
func (s *FollowService) saveFollowTx(tx *gorm.DB, follow *model.Follow) error {
	// 两个 ID 都有值时先查重，给出友好错误；唯一性由复合唯一索引兜底
	if follow.UserID != uuid.Nil && follow.FriendID != uuid.Nil {
		var count int64
		err := tx.Model(&model.Follow{}).
			Where("user_id = ? AND friend_id = ?", follow.UserID, follow.FriendID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check follow: %w", err)
		}
		if count > 0 {
			return ErrDuplicateFollow
		}
	}

	follow.EstablishedAt = time.Now()

	if err := tx.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateFollow
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// DeleteFollow 取消关注
//
// 删除不存在的边不是错误，返回受影响行数 0。
func (s *FollowService) DeleteFollow(userID, friendID uuid.UUID) (int64, error) {
	result := s.db.Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete follow: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// GetUserFollowers 列出关注 userID 的用户名
//
// 扫描 friend_id = userID 的边，按建立时间升序，逐个把 user_id 解析成用户名。
// 解析不到就是悬空外键，整个调用以 ErrUserNotFound 失败，不静默丢条目。
func (s *FollowService) GetUserFollowers(userID uuid.UUID) ([]string, error) {
	var follows []model.Follow
	err := s.db.Where("friend_id = ?", userID).
		Order("established_at ASC").
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query followers: %w", err)
	}

	names := make([]string, 0, len(follows))
	for _, follow := range follows {
		follower, err := s.userSvc.FindUserByID(follow.UserID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return nil, fmt.Errorf("follower %s: %w", follow.UserID, ErrUserNotFound)
			}
			return nil, err
		}
		names = append(names, follower.Username)
	}
	return names, nil
}

// AcceptFriendRequest 接受好友申请：待处理申请 → 关注边，单事务完成
//
// 建边和删申请是一个原子单元：建边因重复失败时申请原样保留（可重试可查看），
// 任一步持久化失败整体回滚，并发读要么看到旧状态要么看到新状态，不存在中间态。
func (s *FollowService) AcceptFriendRequest(requesterID, targetID uuid.UUID) (*model.Follow, error) {
	follow := &model.Follow{
		UserID:   requesterID,
		FriendID: targetID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saveFollowTx(tx, follow); err != nil {
			return err
		}

		if err := tx.Where("requester_id = ? AND target_id = ?", requesterID, targetID).
			Delete(&model.FriendRequest{}).Error; err != nil {
			return fmt.Errorf("failed to delete friend request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return follow, nil
}
