package service

import (
	"errors"
	"fmt"
	"log"

	"umastagram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendRequestService 管理待处理好友申请。
//
// 同一有序对 (requester, target) 最多一条申请；申请没有状态机，
// 被接受或撤回时整行删除。reverse 对不互斥：A→B 的申请不挡 B→A。
type FriendRequestService struct {
	db      *gorm.DB
	userSvc *UserService
}

func NewFriendRequestService(db *gorm.DB, userSvc *UserService) *FriendRequestService {
	return &FriendRequestService{db: db, userSvc: userSvc}
}

// SendFriendRequest 发送好友申请
//
// 同一有序对已有待处理申请时返回 ErrDuplicateRequest。
// 存在性检查只是为了友好报错，唯一性最终由数据库复合唯一索引兜底，
// 并发下撞索引会被翻译成 gorm.ErrDuplicatedKey，这里同样归一成 ErrDuplicateRequest。
func (s *FriendRequestService) SendFriendRequest(requesterID, targetID uuid.UUID) (*model.FriendRequest, error) {
	var count int64
	err := s.db.Model(&model.FriendRequest{}).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check friend request: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateRequest
	}

	request := &model.FriendRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
	}

	if err := s.db.Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	return request, nil
}

// DeleteFriendRequest 删除（撤回/拒绝）好友申请
//
// 删除不存在的申请不是错误，返回受影响行数 0。
func (s *FriendRequestService) DeleteFriendRequest(requesterID, targetID uuid.UUID) (int64, error) {
	result := s.db.Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Delete(&model.FriendRequest{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete friend request: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Printf("Deleted friend request from user %s to user %s", requesterID, targetID)
	}
	return result.RowsAffected, nil
}

// GetUserFriendRequests 列出发给 targetID 的待处理申请，返回申请人用户名
//
// 按申请时间升序。任何一个申请人 ID 解析不到用户都算数据完整性错误，
// 整个调用失败（ErrUserNotFound），不静默跳过悬空外键。
func (s *FriendRequestService) GetUserFriendRequests(targetID uuid.UUID) ([]string, error) {
	var requests []model.FriendRequest
	err := s.db.Where("target_id = ?", targetID).
		Order("requested_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}

	names := make([]string, 0, len(requests))
	for _, request := range requests {
		requester, err := s.userSvc.FindUserByID(request.RequesterID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return nil, fmt.Errorf("requester %s: %w", request.RequesterID, ErrUserNotFound)
			}
			return nil, err
		}
		names = append(names, requester.Username)
	}
	return names, nil
}
