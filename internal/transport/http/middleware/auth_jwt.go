package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gocart-api/internal/core/auth"
	resp "gocart-api/internal/transport/http/response"
)

// 下游 handler 统一按这两个 key 取调用者身份
const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT 解析 Bearer token 并落 userId/role。
// 身份无法归属的请求直接失败，不进入任何业务逻辑。
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortErr(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortErr(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.AbortErr(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
