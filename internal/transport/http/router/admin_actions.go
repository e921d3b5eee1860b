package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gocart-api/internal/domain"
	"gocart-api/internal/service"
	httpez "gocart-api/internal/transport/http/ez"
)

// 管理端审核接口集中在这里注册
func MountAdminActions(admin *gin.RouterGroup, review *service.ReviewService) {
	ez := httpez.New(admin)

	// --- GET /admin/v1/stores  审核队列 ---
	type listQ struct {
		Status string `form:"status"` // pending/approved/rejected，空 = 全部
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
	}
	type row struct {
		ID        string    `json:"id"`
		UserID    string    `json:"userId"`
		Name      string    `json:"name"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		Logo      string    `json:"logo"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	httpez.RegisterAction[listQ, listOut](ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/stores",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			switch in.Status {
			case "", domain.StoreStatusPending, domain.StoreStatusApproved, domain.StoreStatusRejected:
			default:
				return listOut{}, httpez.BadRequest("unknown status")
			}
			stores, total, err := review.List(c.Request.Context(), in.Status, in.Offset, in.Limit)
			if err != nil {
				return listOut{}, httpez.Internal("list stores failed", err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(stores))}
			for _, s := range stores {
				out.Items = append(out.Items, row{
					ID: s.ID, UserID: s.UserID, Name: s.Name, Username: s.Username,
					Email: s.Email, Logo: s.Logo, Status: s.Status, CreatedAt: s.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/stores/:id/approve | /reject ---
	type reviewOut struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	reviewErr := func(err error) error {
		if errors.Is(err, service.ErrNotRegistered) {
			return httpez.NotFound("store not found")
		}
		return httpez.Internal("review failed", err)
	}

	httpez.RegisterAction[struct{}, reviewOut](ez, httpez.Action[struct{}, reviewOut]{
		Method: http.MethodPost,
		Path:   "/stores/:id/approve",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (reviewOut, error) {
			id := c.Param("id")
			if err := review.Approve(c.Request.Context(), id); err != nil {
				return reviewOut{}, reviewErr(err)
			}
			return reviewOut{ID: id, Status: domain.StoreStatusApproved}, nil
		},
	})

	httpez.RegisterAction[struct{}, reviewOut](ez, httpez.Action[struct{}, reviewOut]{
		Method: http.MethodPost,
		Path:   "/stores/:id/reject",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (reviewOut, error) {
			id := c.Param("id")
			if err := review.Reject(c.Request.Context(), id); err != nil {
				return reviewOut{}, reviewErr(err)
			}
			return reviewOut{ID: id, Status: domain.StoreStatusRejected}, nil
		},
	})
}
