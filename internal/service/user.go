package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gocart-api/internal/domain"
	"gocart-api/pkg/utils"
)

// UserService 身份侧协作方：邮箱+密码登录，首登自动注册
type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, l *zap.Logger) *UserService {
	return &UserService{users: users, log: l}
}

// Login 查不到就自动注册。返回的 isNew 供前端区分首登
func (s *UserService) Login(ctx context.Context, email, password, name string) (*domain.User, bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}
	if u != nil {
		if !utils.CheckPassword(password, u.PasswordHash) {
			return nil, false, ErrInvalidLogin
		}
		return u, false, nil
	}

	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = "user"
		}
	}
	nu := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		Role:         "user",
	}
	if err := s.users.Create(ctx, nu); err != nil {
		// 并发兜底：唯一冲突 → 当作已注册再查一次
		if IsConflict(err) {
			u, err2 := s.users.FindByEmail(ctx, email)
			if err2 != nil || u == nil {
				return nil, false, fmt.Errorf("login race: %w", err)
			}
			if !utils.CheckPassword(password, u.PasswordHash) {
				return nil, false, ErrInvalidLogin
			}
			return u, false, nil
		}
		return nil, false, fmt.Errorf("register user: %w", err)
	}
	s.log.Info("user auto-registered", zap.String("user_id", nu.ID), zap.String("email", email))
	return nu, true, nil
}

// Get 按 ID 取用户
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}
