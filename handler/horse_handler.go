package handler

import (
	"errors"

	"umastagram/service"
	"umastagram/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HorseHandler 原型马图鉴接口（只读）
type HorseHandler struct {
	horseSvc *service.HorseService
}

func NewHorseHandler(horseSvc *service.HorseService) *HorseHandler {
	return &HorseHandler{horseSvc: horseSvc}
}

// GetAllHorses 图鉴列表
func (h *HorseHandler) GetAllHorses(c *gin.Context) {
	horses, err := h.horseSvc.GetAllHorses()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"horses": horses})
}

// GetHorseByID 图鉴详情
func (h *HorseHandler) GetHorseByID(c *gin.Context) {
	horseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	horse, err := h.horseSvc.GetHorseByID(horseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "horse not found")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"horse": horse})
}
