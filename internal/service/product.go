package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gocart-api/internal/domain"
	"gocart-api/internal/media"
	"gocart-api/pkg/utils"
)

// 单次商品创建的图片并发上传上限
const uploadConcurrency = 4

// ImageFile 一张待上传的商品图
type ImageFile struct {
	Name string
	Data []byte
}

// ProductInput 商品创建表单
type ProductInput struct {
	Name        string      `validate:"required"`
	Description string      `validate:"required"`
	MRP         float64     `validate:"required,gt=0"`
	Price       float64     `validate:"required,gt=0"`
	Category    string      `validate:"required"`
	Images      []ImageFile `validate:"required,min=1"`
}

type ProductService struct {
	products domain.ProductRepository
	stores   domain.StoreRepository
	media    media.Uploader
	log      *zap.Logger
	validate *validator.Validate
}

func NewProductService(products domain.ProductRepository, stores domain.StoreRepository, m media.Uploader, l *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		stores:   stores,
		media:    m,
		log:      l,
		validate: validator.New(),
	}
}

// AuthorizeSeller 调用者必须拥有一家已过审的店铺，返回其 storeId
func (s *ProductService) AuthorizeSeller(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized
	}
	store, err := s.stores.FindByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("lookup store by user: %w", err)
	}
	if store == nil || store.Status != domain.StoreStatusApproved {
		return "", ErrUnauthorized
	}
	return store.ID, nil
}

// Create 新建商品：图片并发上传，全部成功才落库。
// 任何一张失败则整体失败，已传上去的图片作为孤儿资源只记日志。
func (s *ProductService) Create(ctx context.Context, storeID string, in ProductInput) error {
	if err := s.validate.Struct(in); err != nil {
		missing := missingFields(err)
		s.log.Info("product rejected: missing fields",
			zap.String("store_id", storeID),
			zap.Strings("missing", missing))
		return &ValidationError{Missing: missing, Msg: "Missing product info"}
	}

	urls := make([]string, len(in.Images))
	paths := make([]string, len(in.Images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, img := range in.Images {
		g.Go(func() error {
			filePath, err := s.media.Upload(gctx, img.Data, img.Name, media.FolderProducts)
			if err != nil {
				return fmt.Errorf("upload image %q: %w", img.Name, err)
			}
			paths[i] = filePath
			urls[i] = s.media.DeriveURL(filePath, media.ProductTransform)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uploaded := make([]string, 0, len(paths))
		for _, p := range paths {
			if p != "" {
				uploaded = append(uploaded, p)
			}
		}
		if len(uploaded) > 0 {
			s.log.Warn("product upload aborted, assets orphaned",
				zap.String("store_id", storeID),
				zap.Strings("asset_paths", uploaded))
		}
		return err
	}

	p := &domain.Product{
		ID:          utils.NewID(),
		Name:        in.Name,
		Description: in.Description,
		MRP:         in.MRP,
		Price:       in.Price,
		Category:    in.Category,
		Images:      urls,
		StoreID:     storeID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// List 返回该店铺的全部商品，不分页
func (s *ProductService) List(ctx context.Context, storeID string) ([]domain.Product, error) {
	return s.products.ListByStoreID(ctx, storeID)
}
