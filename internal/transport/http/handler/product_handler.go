package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gocart-api/internal/service"
	mdw "gocart-api/internal/transport/http/middleware"
	resp "gocart-api/internal/transport/http/response"
)

// ProductHandler 卖家侧商品创建与列表
type ProductHandler struct {
	products *service.ProductService
	log      *zap.Logger
}

func NewProductHandler(products *service.ProductService, l *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: l}
}

func (h *ProductHandler) MountAPI(g *gin.RouterGroup) {
	g.POST("/store/product", h.Create)
	g.GET("/store/product", h.List)
}

// Create POST /store/product 新建商品（multipart 表单，图片可多张）
func (h *ProductHandler) Create(c *gin.Context) {
	// 卖家授权先于任何表单解析
	storeID, err := h.products.AuthorizeSeller(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		h.writeProductErr(c, err)
		return
	}

	in := service.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		MRP:         parseNumber(c.PostForm("mrp")),
		Price:       parseNumber(c.PostForm("price")),
		Category:    c.PostForm("category"),
	}
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["image"] {
			data, err := readUpload(fh)
			if err != nil {
				resp.Err(c, http.StatusBadRequest, err.Error())
				return
			}
			in.Images = append(in.Images, service.ImageFile{Name: fh.Filename, Data: data})
		}
	}

	if err := h.products.Create(c.Request.Context(), storeID, in); err != nil {
		h.writeProductErr(c, err)
		return
	}
	resp.Message(c, "Product added successfully")
}

// List GET /store/product 当前卖家的全部商品
func (h *ProductHandler) List(c *gin.Context) {
	storeID, err := h.products.AuthorizeSeller(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		h.writeProductErr(c, err)
		return
	}
	list, err := h.products.List(c.Request.Context(), storeID)
	if err != nil {
		h.log.Error("product list failed", zap.String("store_id", storeID), zap.Error(err))
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	resp.OK(c, gin.H{"products": list})
}

func (h *ProductHandler) writeProductErr(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		resp.Err(c, http.StatusUnauthorized, "Unauthorized")
	case errors.As(err, &ve):
		resp.Err(c, http.StatusBadRequest, ve.Msg)
	default:
		h.log.Error("product request failed", zap.Error(err))
		resp.Err(c, http.StatusBadRequest, err.Error())
	}
}

// parseNumber 解析失败按 0 处理，交给必填校验兜底
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
