package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gocart-api/internal/core/auth"
	mdw "gocart-api/internal/transport/http/middleware"
)

// NewAPIEngine 用户端引擎。模块先 Register 再 build
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(32<<20), // 商品图多张上传，给到 32MB
		mdw.Timeout(30*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共接口（/auth/login）
	MountAllPublic(api)

	// 鉴权接口：店铺准入、商品、/me 全部要求可归属的身份
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	MountAllAPI(authed)

	return r
}
