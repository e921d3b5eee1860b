package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 对外线上格式与原服务保持逐字段兼容：
// 成功体要么是数据本身（如 {"status": ...}），要么是 {"message": ...}；
// 失败体统一 {"error": ...} 且使用真实 HTTP 状态码。

func OK(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, data)
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// BadRequestMessage "Missing store info" 这类 400 走 message 字段（历史格式）
func BadRequestMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
