package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type CartLineRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lines []*types.CartLine) ([]*types.CartLine, error)
	// ListActiveByOwnerProduct returns active lines for one owner scope and
	// product, variations preloaded, in stable (created_at, id) order.
	ListActiveByOwnerProduct(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef, productID uuid.UUID) ([]*types.CartLine, error)
	ListActiveByOwner(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef) ([]*types.CartLine, error)
	GetByOwnerProductAndIDs(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef, productID uuid.UUID, lineIDs []uuid.UUID) ([]*types.CartLine, error)
	UpdateQuantity(ctx context.Context, tx *gorm.DB, lineID uuid.UUID, quantity int) error
	AppendVariations(ctx context.Context, tx *gorm.DB, line *types.CartLine, variations []*types.Variation) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, lineIDs []uuid.UUID) error
	SumActiveQuantityByOwner(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef) (int, error)
}

type cartLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartLineRepo(db *gorm.DB, baseLog *logger.Logger) CartLineRepo {
	repoLog := baseLog.With("repo", "CartLineRepo")
	return &cartLineRepo{db: db, log: repoLog}
}

func scopeOwner(q *gorm.DB, ref types.LineOwnerRef) *gorm.DB {
	if ref.UserID != nil {
		return q.Where("user_id = ?", *ref.UserID)
	}
	if ref.CartID != nil {
		return q.Where("cart_id = ?", *ref.CartID)
	}
	// Neither side set: match nothing rather than everything.
	return q.Where("1 = 0")
}

func (clr *cartLineRepo) Create(ctx context.Context, tx *gorm.DB, lines []*types.CartLine) ([]*types.CartLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	if len(lines) == 0 {
		return []*types.CartLine{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (clr *cartLineRepo) ListActiveByOwnerProduct(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef, productID uuid.UUID) ([]*types.CartLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	var results []*types.CartLine
	q := transaction.WithContext(ctx).
		Preload("Variations").
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("created_at ASC, id ASC")
	if err := scopeOwner(q, ref).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (clr *cartLineRepo) ListActiveByOwner(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef) ([]*types.CartLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	var results []*types.CartLine
	q := transaction.WithContext(ctx).
		Preload("Product").
		Preload("Variations").
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC")
	if err := scopeOwner(q, ref).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (clr *cartLineRepo) GetByOwnerProductAndIDs(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef, productID uuid.UUID, lineIDs []uuid.UUID) ([]*types.CartLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	var results []*types.CartLine
	if len(lineIDs) == 0 {
		return results, nil
	}
	q := transaction.WithContext(ctx).
		Where("product_id = ? AND id IN ?", productID, lineIDs)
	if err := scopeOwner(q, ref).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (clr *cartLineRepo) UpdateQuantity(ctx context.Context, tx *gorm.DB, lineID uuid.UUID, quantity int) error {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.CartLine{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

func (clr *cartLineRepo) AppendVariations(ctx context.Context, tx *gorm.DB, line *types.CartLine, variations []*types.Variation) error {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	if len(variations) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(line).
		Association("Variations").
		Append(variations)
}

func (clr *cartLineRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, lineIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	if len(lineIDs) == 0 {
		return nil
	}
	for _, id := range lineIDs {
		line := types.CartLine{ID: id}
		if err := transaction.WithContext(ctx).Model(&line).Association("Variations").Clear(); err != nil {
			return err
		}
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", lineIDs).
		Delete(&types.CartLine{}).Error
}

func (clr *cartLineRepo) SumActiveQuantityByOwner(ctx context.Context, tx *gorm.DB, ref types.LineOwnerRef) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	var total int64
	q := transaction.WithContext(ctx).
		Model(&types.CartLine{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(quantity), 0)")
	if err := scopeOwner(q, ref).Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}
