package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gocart-api/internal/domain"
	"gocart-api/internal/media"
	"gocart-api/internal/repo"
	"gocart-api/pkg/utils"
)

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Store{}, &domain.Product{}))
	return db
}

// fakeUploader 记录上传次数，可指定失败的文件名
type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
	failOn  string
}

func (f *fakeUploader) Upload(_ context.Context, _ []byte, filename, folder string) (string, error) {
	if f.failOn != "" && strings.Contains(filename, f.failOn) {
		return "", errors.New("cdn unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, folder+"/"+filename)
	return "/" + folder + "/" + filename, nil
}

func (f *fakeUploader) DeriveURL(filePath string, tr media.Transform) string {
	return fmt.Sprintf("https://cdn.test/tr:q-%s,f-%s,w-%d%s", tr.Quality, tr.Format, tr.Width, filePath)
}

func (f *fakeUploader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func newAdmission(db *gorm.DB, up media.Uploader) *AdmissionService {
	return NewAdmissionService(repo.NewStoreRepo(db), repo.NewUserRepo(db), up, nil, zap.NewNop())
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	require.NoError(t, db.Create(&domain.User{
		ID: id, Email: id + "@x.com", Name: id, Role: "user",
	}).Error)
}

func validApp() StoreApplication {
	return StoreApplication{
		Name:        "Shop A",
		Username:    "ShopA",
		Description: "d",
		Email:       "a@x.com",
		Contact:     "123",
		Address:     "addr",
		Logo:        []byte{0x89, 0x50, 0x4e, 0x47},
		LogoName:    "logo.png",
	}
}

// ==================== 准入流程 ====================

func TestSubmit_CreatesPendingStore(t *testing.T) {
	db := setupTestDB(t)
	up := &fakeUploader{}
	svc := newAdmission(db, up)
	seedUser(t, db, "userA")

	d, err := svc.Submit(context.Background(), "userA", validApp())
	require.NoError(t, err)
	assert.False(t, d.Existing)

	var s domain.Store
	require.NoError(t, db.First(&s, "user_id = ?", "userA").Error)
	assert.Equal(t, domain.StoreStatusPending, s.Status)
	assert.Equal(t, "shopa", s.Username, "用户名入库必须小写")
	assert.Equal(t, "https://cdn.test/tr:q-auto,f-webp,w-512/logos/logo.png", s.Logo)

	// 回链
	var u domain.User
	require.NoError(t, db.First(&u, "id = ?", "userA").Error)
	require.NotNil(t, u.StoreID)
	assert.Equal(t, s.ID, *u.StoreID)

	assert.Equal(t, 1, up.count())
}

func TestSubmit_ShortCircuitsOnExistingStore(t *testing.T) {
	db := setupTestDB(t)
	up := &fakeUploader{}
	svc := newAdmission(db, up)
	seedUser(t, db, "userA")

	_, err := svc.Submit(context.Background(), "userA", validApp())
	require.NoError(t, err)
	uploadsAfterFirst := up.count()

	// 第二次：字段全空也要返回现状态，且零副作用
	d, err := svc.Submit(context.Background(), "userA", StoreApplication{})
	require.NoError(t, err)
	assert.True(t, d.Existing)
	assert.Equal(t, domain.StoreStatusPending, d.Status)
	assert.Equal(t, uploadsAfterFirst, up.count(), "短路时不得再上传")

	var n int64
	db.Model(&domain.Store{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestSubmit_MissingFields(t *testing.T) {
	db := setupTestDB(t)
	up := &fakeUploader{}
	svc := newAdmission(db, up)
	seedUser(t, db, "userA")

	app := validApp()
	app.Email = ""
	app.Logo = nil

	_, err := svc.Submit(context.Background(), "userA", app)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Missing store info", ve.Msg)
	assert.ElementsMatch(t, []string{"Email", "Logo"}, ve.Missing)

	// 无副作用
	assert.Zero(t, up.count())
	var n int64
	db.Model(&domain.Store{}).Count(&n)
	assert.Zero(t, n)
}

func TestSubmit_UsernameTaken_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdmission(db, &fakeUploader{})
	seedUser(t, db, "userA")
	seedUser(t, db, "userB")

	_, err := svc.Submit(context.Background(), "userA", validApp()) // 占下 "shopa"
	require.NoError(t, err)

	appB := validApp()
	appB.Username = "SHOPA"
	_, err = svc.Submit(context.Background(), "userB", appB)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var n int64
	db.Model(&domain.Store{}).Count(&n)
	assert.EqualValues(t, 1, n, "冲突时不得落新行")
}

func TestSubmit_ConstraintIsAuthoritative(t *testing.T) {
	// 绕开预检直接撞唯一约束：模拟两个并发首次申请中晚到的那个
	db := setupTestDB(t)
	seedUser(t, db, "userB")

	require.NoError(t, db.Create(&domain.Store{
		ID: utils.NewID(), UserID: "userA", Name: "A", Username: "shopa",
		Status: domain.StoreStatusPending,
	}).Error)

	// 直接走仓储层：userID 不冲突但 username 冲突
	stores := repo.NewStoreRepo(db)
	err := stores.Create(context.Background(), &domain.Store{
		ID: utils.NewID(), UserID: "userB", Name: "B", Username: "shopa",
		Status: domain.StoreStatusPending,
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err), "唯一约束必须以冲突形态浮出，不能是笼统错误")
}

func TestStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdmission(db, &fakeUploader{})
	seedUser(t, db, "userA")

	_, err := svc.Status(context.Background(), "userA")
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = svc.Submit(context.Background(), "userA", validApp())
	require.NoError(t, err)

	// 幂等：重复查询直到外部改状态前都一样
	for i := 0; i < 3; i++ {
		st, err := svc.Status(context.Background(), "userA")
		require.NoError(t, err)
		assert.Equal(t, domain.StoreStatusPending, st)
	}

	// 外部（管理端）改状态后读到新值
	require.NoError(t, db.Model(&domain.Store{}).Where("user_id = ?", "userA").
		Update("status", domain.StoreStatusApproved).Error)
	st, err := svc.Status(context.Background(), "userA")
	require.NoError(t, err)
	assert.Equal(t, domain.StoreStatusApproved, st)
}

func TestSubmit_UploadFailureSurfaced(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdmission(db, &fakeUploader{failOn: "logo"})
	seedUser(t, db, "userA")

	_, err := svc.Submit(context.Background(), "userA", validApp())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cdn unavailable")

	var n int64
	db.Model(&domain.Store{}).Count(&n)
	assert.Zero(t, n, "上传失败不得建店")
}
