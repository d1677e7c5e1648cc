package handler

import (
	"umastagram/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseUUIDParam 解析路径参数中的 UUID，失败时直接写 400
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
