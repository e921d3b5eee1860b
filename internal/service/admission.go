package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gocart-api/internal/core/cache"
	"gocart-api/internal/domain"
	"gocart-api/internal/media"
	"gocart-api/pkg/utils"
)

const statusCacheTTL = 30 * time.Second

// StatusCacheKey 状态读路径的缓存键；所有改状态的写路径负责删除它
func StatusCacheKey(userID string) string { return "store:status:" + userID }

// StoreApplication 开店申请表单。六个文本字段 + logo 全部必填
type StoreApplication struct {
	Name        string `validate:"required"`
	Username    string `validate:"required"`
	Description string `validate:"required"`
	Email       string `validate:"required"`
	Contact     string `validate:"required"`
	Address     string `validate:"required"`
	Logo        []byte `validate:"required"`
	LogoName    string
}

// Decision 准入流程的出参：要么命中已有店铺返回其状态，要么完成创建
type Decision struct {
	Existing bool
	Status   string
}

// AdmissionService 店铺准入流程：校验 → 上传 → 建店 → 回链
type AdmissionService struct {
	stores   domain.StoreRepository
	users    domain.UserRepository
	media    media.Uploader
	cache    *cache.Cache
	log      *zap.Logger
	validate *validator.Validate
}

func NewAdmissionService(stores domain.StoreRepository, users domain.UserRepository, m media.Uploader, c *cache.Cache, l *zap.Logger) *AdmissionService {
	return &AdmissionService{
		stores:   stores,
		users:    users,
		media:    m,
		cache:    c,
		log:      l,
		validate: validator.New(),
	}
}

// Submit 提交开店申请。
// 已有店铺的调用者直接拿到当前状态，不再触发任何校验或上传，
// 所以前端可以在每次进店时安全地重复调用。
func (s *AdmissionService) Submit(ctx context.Context, userID string, app StoreApplication) (*Decision, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	// 1. 归属检查：命中即短路
	existing, err := s.stores.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup store by user: %w", err)
	}
	if existing != nil {
		return &Decision{Existing: true, Status: existing.Status}, nil
	}

	// 2. 必填校验（聚合结果，对外只报粗粒度文案）
	if err := s.validate.Struct(app); err != nil {
		missing := missingFields(err)
		s.log.Info("store application rejected: missing fields",
			zap.String("user_id", userID),
			zap.Strings("missing", missing))
		return nil, &ValidationError{Missing: missing, Msg: "Missing store info"}
	}

	// 3. 用户名小写归一后查重（乐观预检，真正的保证在唯一约束）
	username := strings.ToLower(strings.TrimSpace(app.Username))
	taken, err := s.stores.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup store by username: %w", err)
	}
	if taken != nil {
		return nil, ErrUsernameTaken
	}

	// 4-5. 上传 logo 并派生优化 URL
	logoName := app.LogoName
	if logoName == "" {
		logoName = username + ".png"
	}
	filePath, err := s.media.Upload(ctx, app.Logo, logoName, media.FolderLogos)
	if err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}
	logoURL := s.media.DeriveURL(filePath, media.LogoTransform)

	// 6. 建店。(userId)/(username) 唯一约束在这里一锤定音；
	// 撞约束时 CDN 上的 logo 成为孤儿资源，只记日志不回收
	store := &domain.Store{
		ID:          utils.NewID(),
		UserID:      userID,
		Name:        app.Name,
		Username:    username,
		Description: app.Description,
		Email:       app.Email,
		Contact:     app.Contact,
		Address:     app.Address,
		Logo:        logoURL,
		Status:      domain.StoreStatusPending,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		if IsConflict(err) {
			s.log.Warn("store create hit unique constraint, logo asset orphaned",
				zap.String("user_id", userID),
				zap.String("username", username),
				zap.String("asset_path", filePath))
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create store: %w", err)
	}

	// 7. 回链用户。这一步失败会留下无回链的店铺：重试会被第 1 步短路、
	// 永远补不上链接，必须和普通校验失败区分开、留给带外修复
	if err := s.users.AttachStore(ctx, userID, store.ID); err != nil {
		s.log.Error("store created but user link failed, needs manual repair",
			zap.String("user_id", userID),
			zap.String("store_id", store.ID),
			zap.Error(err))
		return nil, fmt.Errorf("link store to user: %w", err)
	}

	if s.cache != nil {
		s.cache.Del(ctx, StatusCacheKey(userID))
	}
	return &Decision{Existing: false, Status: store.Status}, nil
}

// Status 只读状态查询，无副作用
func (s *AdmissionService) Status(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized
	}
	load := func(ctx context.Context) (*string, error) {
		store, err := s.stores.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, ErrNotRegistered
		}
		return &store.Status, nil
	}

	if s.cache != nil {
		st, err := cache.GetOrLoadJSON[string](s.cache, ctx, StatusCacheKey(userID), statusCacheTTL, load)
		if err != nil {
			return "", err
		}
		return *st, nil
	}

	st, err := load(ctx)
	if err != nil {
		return "", err
	}
	return *st, nil
}

// missingFields 从 validator 的错误里收集未通过的字段名
func missingFields(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
