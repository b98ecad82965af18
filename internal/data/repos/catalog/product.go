package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
	GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Product, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if len(slugs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Variations", "is_active = ?", true).
		Where("slug IN ?", slugs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Where("is_available = ?", true).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
