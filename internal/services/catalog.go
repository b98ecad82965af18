package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sarunks7/storely-backend/internal/data/repos"
	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/pkg/apperr"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

// VariationSelection is one submitted (axis, value) pair from an add-to-cart
// form, e.g. color=red.
type VariationSelection struct {
	Axis  string `json:"axis"`
	Value string `json:"value"`
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*types.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*types.Product, error)
	// MatchVariations resolves submitted pairs against the product's
	// catalog, case-insensitively. Pairs with no match are silently
	// dropped; the result is deduplicated and order-independent.
	MatchVariations(ctx context.Context, productID uuid.UUID, selections []VariationSelection) ([]*types.Variation, error)
}

type catalogService struct {
	db            *gorm.DB
	log           *logger.Logger
	productRepo   repos.ProductRepo
	variationRepo repos.VariationRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, variationRepo repos.VariationRepo) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:            db,
		log:           serviceLog,
		productRepo:   productRepo,
		variationRepo: variationRepo,
	}
}

func (cs *catalogService) ListProducts(ctx context.Context) ([]*types.Product, error) {
	products, err := cs.productRepo.ListAvailable(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (cs *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	products, err := cs.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	return products[0], nil
}

func (cs *catalogService) GetProductBySlug(ctx context.Context, slug string) (*types.Product, error) {
	products, err := cs.productRepo.GetBySlugs(ctx, nil, []string{slug})
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %q: %w", slug, apperr.ErrNotFound)
	}
	return products[0], nil
}

func (cs *catalogService) MatchVariations(ctx context.Context, productID uuid.UUID, selections []VariationSelection) ([]*types.Variation, error) {
	var matched []*types.Variation
	seen := make(map[uuid.UUID]struct{}, len(selections))
	for _, sel := range selections {
		axis := strings.TrimSpace(sel.Axis)
		value := strings.TrimSpace(sel.Value)
		if axis == "" || value == "" {
			continue
		}
		found, err := cs.variationRepo.GetByProductAxisValue(ctx, nil, productID, axis, value)
		if err != nil {
			return nil, fmt.Errorf("match variation %s=%s: %w", axis, value, err)
		}
		if len(found) == 0 {
			// Unknown pairs are dropped, never an error.
			cs.log.Debug("variation pair did not match, dropping", "axis", axis, "value", value)
			continue
		}
		v := found[0]
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}
		matched = append(matched, v)
	}
	return matched, nil
}
