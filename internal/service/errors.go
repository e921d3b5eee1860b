package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// 业务错误分类：校验 / 冲突 / 未授权 / 未注册；其余按上游错误透传
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrNotRegistered = errors.New("not registered")
	ErrUnauthorized  = errors.New("Unauthorized")
	ErrInvalidLogin  = errors.New("invalid credentials")
)

// ValidationError 聚合的必填校验结果，内部保留缺失字段清单
type ValidationError struct {
	Missing []string
	Msg     string // 对外的粗粒度文案
}

func (e *ValidationError) Error() string { return e.Msg }

// IsConflict 唯一约束冲突判定。gorm 的 TranslateError 覆盖主流驱动，
// 字符串嗅探兜底不同版本/驱动的差异。
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
