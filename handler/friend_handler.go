package handler

import (
	"errors"
	"log"

	"umastagram/middleware"
	"umastagram/model"
	"umastagram/service"
	"umastagram/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FriendHandler 好友申请 / 关注相关接口
type FriendHandler struct {
	frSvc     *service.FriendRequestService
	followSvc *service.FollowService
	userSvc   *service.UserService
	notifSvc  *service.NotificationService
}

func NewFriendHandler(frSvc *service.FriendRequestService, followSvc *service.FollowService, userSvc *service.UserService, notifSvc *service.NotificationService) *FriendHandler {
	return &FriendHandler{frSvc: frSvc, followSvc: followSvc, userSvc: userSvc, notifSvc: notifSvc}
}

// SendFriendRequest 发送好友申请（申请人 = 当前登录用户）
func (h *FriendHandler) SendFriendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		TargetID uuid.UUID `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// 不能向自己发申请
	if userID == req.TargetID {
		utils.BadRequest(c, "cannot send a friend request to yourself")
		return
	}

	// 目标用户必须存在
	if _, err := h.userSvc.FindUserByID(req.TargetID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	request, err := h.frSvc.SendFriendRequest(userID, req.TargetID)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateRequest) {
			utils.Conflict(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	h.notify(req.TargetID, "friend_request", "You have a new friend request", map[string]interface{}{
		"requester_id": userID.String(),
	})

	utils.CreatedResponse(c, gin.H{"friend_request": request})
}

// AcceptFriendRequest 接受好友申请（被申请人 = 当前登录用户）
//
// 申请人成为当前用户的关注者：建边和删申请在服务层单事务完成。
func (h *FriendHandler) AcceptFriendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		RequesterID uuid.UUID `json:"requester_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	follow, err := h.followSvc.AcceptFriendRequest(req.RequesterID, userID)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateFollow) {
			utils.Conflict(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	h.notify(req.RequesterID, "follow_accepted", "Your friend request was accepted", map[string]interface{}{
		"friend_id": userID.String(),
	})

	utils.SuccessResponse(c, gin.H{"follow": follow})
}

// WithdrawFriendRequest 撤回自己发出的申请（幂等：不存在也成功，removed=0）
func (h *FriendHandler) WithdrawFriendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		TargetID uuid.UUID `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	removed, err := h.frSvc.DeleteFriendRequest(userID, req.TargetID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"removed": removed})
}

// RejectFriendRequest 拒绝发给自己的申请（幂等）
func (h *FriendHandler) RejectFriendRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		RequesterID uuid.UUID `json:"requester_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	removed, err := h.frSvc.DeleteFriendRequest(req.RequesterID, userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"removed": removed})
}

// GetFriendRequests 列出发给当前用户的待处理申请（申请人用户名）
func (h *FriendHandler) GetFriendRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	// 解析不到申请人属于数据完整性错误，统一按 500 处理
	names, err := h.frSvc.GetUserFriendRequests(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"friend_requests": names})
}

// Follow 直接建立关注（不经申请流程）
func (h *FriendHandler) Follow(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		FriendID uuid.UUID `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if userID == req.FriendID {
		utils.BadRequest(c, "cannot follow yourself")
		return
	}

	follow, err := h.followSvc.SaveFollow(&model.Follow{UserID: userID, FriendID: req.FriendID})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateFollow) {
			utils.Conflict(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"follow": follow})
}

// Unfollow 取消关注（幂等）
func (h *FriendHandler) Unfollow(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		FriendID uuid.UUID `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	removed, err := h.followSvc.DeleteFollow(userID, req.FriendID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"removed": removed})
}

// GetUserFollowers 列出关注 user_id 的用户名
func (h *FriendHandler) GetUserFollowers(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	names, err := h.followSvc.GetUserFollowers(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"followers": names})
}

// notify 发通知，失败只记日志不影响主流程
func (h *FriendHandler) notify(userID uuid.UUID, notifType, title string, metadata map[string]interface{}) {
	if h.notifSvc == nil {
		return
	}
	if _, err := h.notifSvc.CreateNotification(userID, notifType, title, metadata); err != nil {
		log.Printf("[ERROR] Failed to create %s notification for %s: %v", notifType, userID, err)
	}
}
