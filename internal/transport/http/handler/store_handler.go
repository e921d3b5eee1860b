package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gocart-api/internal/service"
	mdw "gocart-api/internal/transport/http/middleware"
	resp "gocart-api/internal/transport/http/response"
)

// StoreHandler 开店申请 + 审核状态查询
type StoreHandler struct {
	admission *service.AdmissionService
	log       *zap.Logger
}

func NewStoreHandler(admission *service.AdmissionService, l *zap.Logger) *StoreHandler {
	return &StoreHandler{admission: admission, log: l}
}

func (h *StoreHandler) MountAPI(g *gin.RouterGroup) {
	g.POST("/store", h.Apply)
	g.GET("/store", h.Status)
}

// Apply POST /store 提交开店申请（multipart 表单）
func (h *StoreHandler) Apply(c *gin.Context) {
	userID := c.GetString(mdw.KeyUserID)

	app := service.StoreApplication{
		Name:        c.PostForm("name"),
		Username:    c.PostForm("username"),
		Description: c.PostForm("description"),
		Email:       c.PostForm("email"),
		Contact:     c.PostForm("contact"),
		Address:     c.PostForm("address"),
	}
	// logo 缺失不在这里报错，统一走聚合校验
	if fh, err := c.FormFile("image"); err == nil {
		data, err := readUpload(fh)
		if err != nil {
			resp.Err(c, http.StatusBadRequest, err.Error())
			return
		}
		app.Logo = data
		app.LogoName = fh.Filename
	}

	d, err := h.admission.Submit(c.Request.Context(), userID, app)
	if err != nil {
		h.writeAdmissionErr(c, err)
		return
	}
	if d.Existing {
		// 已注册：返回现有店铺状态，无任何副作用
		resp.OK(c, gin.H{"status": d.Status})
		return
	}
	// 固定回执，不是实时状态
	resp.Message(c, "Applied, waiting for approval")
}

// Status GET /store 查询审核状态
func (h *StoreHandler) Status(c *gin.Context) {
	userID := c.GetString(mdw.KeyUserID)

	st, err := h.admission.Status(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotRegistered) {
			resp.OK(c, gin.H{"status": "not registered"})
			return
		}
		h.log.Error("store status query failed", zap.String("user_id", userID), zap.Error(err))
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	resp.OK(c, gin.H{"status": st})
}

func (h *StoreHandler) writeAdmissionErr(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		resp.BadRequestMessage(c, ve.Msg)
	case errors.Is(err, service.ErrUsernameTaken):
		resp.Err(c, http.StatusBadRequest, "username already taken")
	case errors.Is(err, service.ErrUnauthorized):
		resp.Err(c, http.StatusUnauthorized, "Unauthorized")
	default:
		h.log.Error("store application failed", zap.Error(err))
		resp.Err(c, http.StatusBadRequest, err.Error())
	}
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
