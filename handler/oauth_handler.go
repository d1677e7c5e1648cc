package handler

import (
	"errors"
	"net/http"
	"net/url"

	"umastagram/middleware"
	"umastagram/service"
	"umastagram/utils"

	"github.com/gin-gonic/gin"
)

type OAuthHandler struct {
	oauthSvc           *service.OAuthService
	webSuccessRedirect string
}

func NewOAuthHandler(oauthSvc *service.OAuthService, webSuccessRedirect string) *OAuthHandler {
	return &OAuthHandler{oauthSvc: oauthSvc, webSuccessRedirect: webSuccessRedirect}
}

// Login 跳转到第三方授权页
// GET /auth/:provider/:platform
func (h *OAuthHandler) Login(c *gin.Context) {
	provider := c.Param("provider")
	platform := c.Param("platform")

	authURL, err := h.oauthSvc.BuildAuthorizeURL(c.Request.Context(), provider, platform)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback 授权回调
// GET /auth/:provider/callback?code=...&state=...
//
// web 流程签发 JWT 后跳转回前端；android 流程直接返回 JSON。
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		utils.BadRequest(c, "missing code or state")
		return
	}

	user, platform, err := h.oauthSvc.HandleCallback(c.Request.Context(), provider, code, state)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOAuthState) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username)
	if err != nil {
		utils.InternalServerError(c, "failed to generate token")
		return
	}

	if platform == "web" {
		redirect := h.webSuccessRedirect + "?token=" + url.QueryEscape(token)
		c.Redirect(http.StatusFound, redirect)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
