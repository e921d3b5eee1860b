package domain

import (
	"context"
	"time"
)

// 店铺审核状态（文本存储，创建后只由管理端流转）
const (
	StoreStatusPending  = "pending"
	StoreStatusApproved = "approved"
	StoreStatusRejected = "rejected"
)

type Store struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"uniqueIndex;size:36" json:"userId"` // 一个用户至多一家店
	Name        string     `gorm:"size:128" json:"name"`
	Username    string     `gorm:"uniqueIndex;size:64" json:"username"` // 全局唯一，入库前统一小写
	Description string     `gorm:"type:text" json:"description"`
	Email       string     `gorm:"size:191" json:"email"`
	Contact     string     `gorm:"size:32" json:"contact"`
	Address     string     `gorm:"type:text" json:"address"`
	Logo        string     `gorm:"size:512" json:"logo"` // 派生后的展示 URL，不存原始字节
	Status      string     `gorm:"size:16;default:pending;index" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`
}

type StoreRepository interface {
	Create(ctx context.Context, s *Store) error
	FindByUserID(ctx context.Context, userID string) (*Store, error)
	FindByUsername(ctx context.Context, username string) (*Store, error)
	FindByID(ctx context.Context, id string) (*Store, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]Store, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
