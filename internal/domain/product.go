package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:128" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	MRP         float64   `gorm:"column:mrp" json:"mrp"`
	Price       float64   `json:"price"`
	Category    string    `gorm:"size:64" json:"category"`
	Images      []string  `gorm:"serializer:json" json:"images"` // 有序的展示 URL 列表
	StoreID     string    `gorm:"size:36;index" json:"storeId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	ListByStoreID(ctx context.Context, storeID string) ([]Product, error)
}
