package handler

import (
	"errors"

	"umastagram/service"
	"umastagram/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UmaHandler 赛马娘图鉴接口（只读）
type UmaHandler struct {
	umaSvc *service.UmaService
}

func NewUmaHandler(umaSvc *service.UmaService) *UmaHandler {
	return &UmaHandler{umaSvc: umaSvc}
}

// GetAllUmas 图鉴列表
func (h *UmaHandler) GetAllUmas(c *gin.Context) {
	umas, err := h.umaSvc.GetAllUmas()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"umas": umas})
}

// GetUmaByID 图鉴详情
func (h *UmaHandler) GetUmaByID(c *gin.Context) {
	umaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	uma, err := h.umaSvc.GetUmaByID(umaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "uma not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"uma": uma})
}
