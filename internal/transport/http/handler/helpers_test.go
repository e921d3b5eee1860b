package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gocart-api/internal/domain"
	"gocart-api/internal/media"
	"gocart-api/internal/repo"
	"gocart-api/internal/service"
	mdw "gocart-api/internal/transport/http/middleware"
)

// 测试环境：真实 sqlite 仓储 + 假 CDN + 从请求头注入身份的替身鉴权
type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, _ []byte, filename, folder string) (string, error) {
	return "/" + folder + "/" + filename, nil
}

func (stubUploader) DeriveURL(filePath string, tr media.Transform) string {
	return fmt.Sprintf("https://cdn.test/tr:w-%d%s", tr.Width, filePath)
}

func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Store{}, &domain.Product{}))

	stores := repo.NewStoreRepo(db)
	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	nop := zap.NewNop()

	admission := service.NewAdmissionService(stores, users, stubUploader{}, nil, nop)
	productSvc := service.NewProductService(products, stores, stubUploader{}, nop)

	r := gin.New()
	g := r.Group("/api/v1")
	g.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set(mdw.KeyUserID, uid)
		}
		c.Next()
	})
	NewStoreHandler(admission, nop).MountAPI(g)
	NewProductHandler(productSvc, nop).MountAPI(g)

	return &testEnv{db: db, router: r}
}

func (e *testEnv) seedUser(t *testing.T, id string) {
	require.NoError(t, e.db.Create(&domain.User{
		ID: id, Email: id + "@x.com", Name: id, Role: "user",
	}).Error)
}

func (e *testEnv) seedStore(t *testing.T, userID, username, status string) string {
	id := "store-" + username
	require.NoError(t, e.db.Create(&domain.Store{
		ID: id, UserID: userID, Name: username, Username: username, Status: status,
	}).Error)
	return id
}

// formReq 构造 multipart 请求；files 的键复用表单字段名，可多值
func formReq(t *testing.T, method, path, asUser string, fields map[string]string, files map[string][]string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, names := range files {
		for _, name := range names {
			fw, err := mw.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = fw.Write([]byte("fake-image-bytes"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if asUser != "" {
		req.Header.Set("X-Test-User", asUser)
	}
	return req
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func storeFields(username string) map[string]string {
	return map[string]string{
		"name":        "Shop " + username,
		"username":    username,
		"description": "d",
		"email":       username + "@x.com",
		"contact":     "123",
		"address":     "addr",
	}
}
