package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gocart-api/internal/core/auth"
	"gocart-api/internal/service"
	mdw "gocart-api/internal/transport/http/middleware"
	resp "gocart-api/internal/transport/http/response"
)

// AuthHandler 身份侧：登录（首登自动注册）+ 当前用户
type AuthHandler struct {
	users *service.UserService
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthHandler(users *service.UserService, jwter *auth.JWTer, l *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwter: jwter, log: l}
}

func (h *AuthHandler) MountPublic(g *gin.RouterGroup) {
	g.POST("/auth/login", h.Login)
}

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/me", h.Me)
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"     binding:"omitempty,max=64"` // 首次注册可用
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}

	u, isNew, err := h.users.Login(c.Request.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			resp.Err(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}

	tok, err := h.jwter.Issue(u.ID, u.Role)
	if err != nil || tok == "" {
		h.log.Error("issue token failed", zap.Error(err))
		resp.Err(c, http.StatusInternalServerError, "issue token failed")
		return
	}
	resp.OK(c, gin.H{
		"token": tok,
		"isNew": isNew,
		"user":  gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	u, err := h.users.Get(c.Request.Context(), uid)
	if err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	if u == nil {
		resp.Err(c, http.StatusNotFound, "user not found")
		return
	}
	resp.OK(c, gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role, "storeId": u.StoreID})
}
