package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gocart-api/internal/core/cache"
	"gocart-api/internal/domain"
)

// ReviewService 管理端的审核动作：pending → approved / rejected。
// 准入流程本身从不改状态，状态流转只发生在这里。
type ReviewService struct {
	stores domain.StoreRepository
	cache  *cache.Cache
	log    *zap.Logger
}

func NewReviewService(stores domain.StoreRepository, c *cache.Cache, l *zap.Logger) *ReviewService {
	return &ReviewService{stores: stores, cache: c, log: l}
}

func (s *ReviewService) Pending(ctx context.Context, offset, limit int) ([]domain.Store, int64, error) {
	return s.stores.ListByStatus(ctx, domain.StoreStatusPending, offset, limit)
}

func (s *ReviewService) List(ctx context.Context, status string, offset, limit int) ([]domain.Store, int64, error) {
	return s.stores.ListByStatus(ctx, status, offset, limit)
}

func (s *ReviewService) Approve(ctx context.Context, storeID string) error {
	return s.transition(ctx, storeID, domain.StoreStatusApproved)
}

func (s *ReviewService) Reject(ctx context.Context, storeID string) error {
	return s.transition(ctx, storeID, domain.StoreStatusRejected)
}

func (s *ReviewService) transition(ctx context.Context, storeID, status string) error {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return fmt.Errorf("lookup store: %w", err)
	}
	if store == nil {
		return ErrNotRegistered
	}
	if err := s.stores.UpdateStatus(ctx, storeID, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	// 状态变了，读路径缓存立即失效
	if s.cache != nil {
		s.cache.Del(ctx, StatusCacheKey(store.UserID))
	}
	s.log.Info("store reviewed",
		zap.String("store_id", storeID),
		zap.String("status", status))
	return nil
}
