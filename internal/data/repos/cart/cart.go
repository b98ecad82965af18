package cart

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type CartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, carts []*types.Cart) ([]*types.Cart, error)
	GetBySessionKeys(ctx context.Context, tx *gorm.DB, sessionKeys []string) ([]*types.Cart, error)
	// GetOrCreateBySessionKey is the lazy-create path for anonymous owners.
	// Safe to call concurrently: the session_key unique index plus ON
	// CONFLICT DO NOTHING keeps one row per session.
	GetOrCreateBySessionKey(ctx context.Context, tx *gorm.DB, cart *types.Cart) (*types.Cart, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	repoLog := baseLog.With("repo", "CartRepo")
	return &cartRepo{db: db, log: repoLog}
}

func (cr *cartRepo) Create(ctx context.Context, tx *gorm.DB, carts []*types.Cart) ([]*types.Cart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(carts) == 0 {
		return []*types.Cart{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (cr *cartRepo) GetBySessionKeys(ctx context.Context, tx *gorm.DB, sessionKeys []string) ([]*types.Cart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Cart
	if len(sessionKeys) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("session_key IN ?", sessionKeys).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cartRepo) GetOrCreateBySessionKey(ctx context.Context, tx *gorm.DB, cart *types.Cart) (*types.Cart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoNothing: true,
		}).
		Create(cart).Error; err != nil {
		return nil, err
	}
	var existing types.Cart
	if err := transaction.WithContext(ctx).
		Where("session_key = ?", cart.SessionKey).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
