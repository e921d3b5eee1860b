package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gocart-api/internal/core/auth"
	"gocart-api/internal/service"
	mdw "gocart-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理端引擎：店铺审核队列。统一要求 admin 角色
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, review *service.ReviewService) *gin.Engine {
	r := gin.New()

	r.Use(
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, "admin"))

	// 自动发现的管理端模块（如有）
	MountAllAdmin(admin)

	// 审核动作
	MountAdminActions(admin, review)

	return r
}
