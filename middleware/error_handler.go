package middleware

import (
	"log"

	"umastagram/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获 panic 和未处理的错误，返回统一格式的错误响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// 记录 panic 信息
				log.Printf("[ERROR] Panic recovered: %v", err)

				if !c.Writer.Written() {
					utils.InternalServerError(c, "internal server error")
				}

				c.Abort()
			}
		}()

		c.Next()

		// 检查是否有错误（通过 c.Errors）
		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			log.Printf("[ERROR] Request error: %v", err.Err)

			if !c.Writer.Written() {
				utils.InternalServerError(c, err.Error())
			}
		}
	}
}
