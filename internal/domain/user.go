package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191" json:"email"`
	Name         string     `gorm:"size:64" json:"name"`
	PasswordHash string     `gorm:"size:191" json:"-"`
	Role         string     `gorm:"size:16" json:"role"` // "user"/"admin"
	StoreID      *string    `gorm:"size:36;index" json:"storeId,omitempty"`
	Store        *Store     `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"index" json:"-"`
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// AttachStore 把店铺回写到用户记录（准入流程第 7 步）
	AttachStore(ctx context.Context, userID, storeID string) error
}
