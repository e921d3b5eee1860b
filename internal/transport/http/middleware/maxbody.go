package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "gocart-api/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小（图片走 multipart，给足余量）
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			resp.AbortErr(c, http.StatusBadRequest, "request body too large")
		}
	}
}
