package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gocart-api/internal/domain"
)

type StoreRepo struct{ db *gorm.DB }

func NewStoreRepo(db *gorm.DB) *StoreRepo { return &StoreRepo{db: db} }

func (r *StoreRepo) Create(ctx context.Context, s *domain.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StoreRepo) FindByUserID(ctx context.Context, userID string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *StoreRepo) FindByUsername(ctx context.Context, username string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.WithContext(ctx).First(&s, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *StoreRepo) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *StoreRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]domain.Store, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Store{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var stores []domain.Store
	if err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

func (r *StoreRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&domain.Store{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
