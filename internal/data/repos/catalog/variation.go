package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type VariationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, variations []*types.Variation) ([]*types.Variation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, variationIDs []uuid.UUID) ([]*types.Variation, error)
	// GetByProductAxisValue matches axis and value case-insensitively,
	// scoped to one product. Active variations only.
	GetByProductAxisValue(ctx context.Context, tx *gorm.DB, productID uuid.UUID, axis, value string) ([]*types.Variation, error)
	ListByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.Variation, error)
}

type variationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVariationRepo(db *gorm.DB, baseLog *logger.Logger) VariationRepo {
	repoLog := baseLog.With("repo", "VariationRepo")
	return &variationRepo{db: db, log: repoLog}
}

func (vr *variationRepo) Create(ctx context.Context, tx *gorm.DB, variations []*types.Variation) ([]*types.Variation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if len(variations) == 0 {
		return []*types.Variation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&variations).Error; err != nil {
		return nil, err
	}
	return variations, nil
}

func (vr *variationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, variationIDs []uuid.UUID) ([]*types.Variation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Variation
	if len(variationIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", variationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *variationRepo) GetByProductAxisValue(ctx context.Context, tx *gorm.DB, productID uuid.UUID, axis, value string) ([]*types.Variation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Variation
	if err := transaction.WithContext(ctx).
		Where("product_id = ? AND LOWER(axis) = LOWER(?) AND LOWER(value) = LOWER(?) AND is_active = ?", productID, axis, value, true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *variationRepo) ListByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.Variation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Variation
	if err := transaction.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("axis ASC, value ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
