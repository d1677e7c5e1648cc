package handler

import (
	"errors"
	"log"

	"umastagram/middleware"
	"umastagram/service"
	"umastagram/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc  *service.PostService
	notifSvc *service.NotificationService
}

func NewPostHandler(postSvc *service.PostService, notifSvc *service.NotificationService) *PostHandler {
	return &PostHandler{postSvc: postSvc, notifSvc: notifSvc}
}

// CreatePost 发帖
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		Text  string  `json:"text" binding:"required"`
		Image *string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	post, err := h.postSvc.CreatePost(userID, req.Text, req.Image)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{"post": post})
}

// GetAllPosts 获取全部帖子
func (h *PostHandler) GetAllPosts(c *gin.Context) {
	posts, err := h.postSvc.GetAllPosts()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"posts": posts})
}

// GetPostsByUser 获取指定用户的帖子
func (h *PostHandler) GetPostsByUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	posts, err := h.postSvc.GetPostsByUser(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"posts": posts})
}

// GetPostByID 按 ID 查帖子
func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postSvc.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"post": post})
}

// DeletePost 删帖（只能删自己的）
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postSvc.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	if post.UserID != userID {
		utils.Forbidden(c, "cannot delete another user's post")
		return
	}

	if _, err := h.postSvc.DeletePost(postID); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessWithMessage(c, "post deleted", nil)
}

// LikePost 点赞
func (h *PostHandler) LikePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	like, err := h.postSvc.LikePost(userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateLike):
			utils.Conflict(c, err.Error())
		case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrUserNotFound):
			utils.NotFound(c, err.Error())
		default:
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	// 通知帖主（自己赞自己不通知）
	if post, err := h.postSvc.GetPostByID(postID); err == nil && post.UserID != userID && h.notifSvc != nil {
		if _, err := h.notifSvc.CreateNotification(post.UserID, "like", "Someone liked your post", map[string]interface{}{
			"post_id": postID.String(),
			"user_id": userID.String(),
		}); err != nil {
			log.Printf("[ERROR] Failed to create like notification: %v", err)
		}
	}

	utils.CreatedResponse(c, gin.H{"like": like})
}

// UnlikePost 取消点赞（幂等）
func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := h.postSvc.UnlikePost(userID, postID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"removed": removed})
}

// GetLikedPosts 获取当前用户点赞过的帖子
func (h *PostHandler) GetLikedPosts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	posts, err := h.postSvc.GetLikedPosts(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"posts": posts})
}

// CreateComment 评论
func (h *PostHandler) CreateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "unauthorized")
		return
	}

	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	comment, err := h.postSvc.CreateComment(postID, userID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.CreatedResponse(c, gin.H{"comment": comment})
}

// GetComments 获取帖子评论
func (h *PostHandler) GetComments(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.postSvc.GetCommentsByPost(postID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"comments": comments})
}
