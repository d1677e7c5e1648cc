package handler

import (
	"strconv"

	"umastagram/middleware"
	"umastagram/service"
	"umastagram/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifSvc *service.NotificationService
}

func NewNotificationHandler(notifSvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

// GetNotifications 获取当前用户通知列表
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, err := h.notifSvc.GetNotifications(userID, limit, offset)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"notifications": notifications})
}

// MarkAllAsRead 全部标记已读
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.notifSvc.MarkAllAsRead(userID); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessWithMessage(c, "all notifications marked as read", nil)
}
