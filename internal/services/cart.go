package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sarunks7/storely-backend/internal/clients/redis"
	"github.com/sarunks7/storely-backend/internal/data/repos"
	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/pkg/apperr"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type CartService interface {
	// AddToCart reconciles one (product, variation set) against the
	// owner's active lines: an exact variation-set match increments that
	// line, anything else creates a new line with quantity 1.
	AddToCart(ctx context.Context, owner types.CartOwner, productID uuid.UUID, variations []*types.Variation) (*types.CartLine, error)
	// Decrement lowers a line's quantity by 1, deleting it at zero.
	// A missing line is a deliberate no-op, not an error.
	Decrement(ctx context.Context, owner types.CartOwner, productID, lineID uuid.UUID) error
	// Remove deletes a line outright. A missing line is ErrNotFound on
	// both anonymous and authenticated paths.
	Remove(ctx context.Context, owner types.CartOwner, productID, lineID uuid.UUID) error
	ComputeTotals(ctx context.Context, owner types.CartOwner) (types.Totals, []*types.CartLine, error)
	CartCount(ctx context.Context, owner types.CartOwner) (int, error)
}

type cartService struct {
	db           *gorm.DB
	log          *logger.Logger
	cartRepo     repos.CartRepo
	cartLineRepo repos.CartLineRepo
	countCache   redis.CartCountCache
	taxRateBP    int64
	locks        ownerLocks
}

func NewCartService(
	db *gorm.DB,
	log *logger.Logger,
	cartRepo repos.CartRepo,
	cartLineRepo repos.CartLineRepo,
	countCache redis.CartCountCache,
	taxRateBP int64,
) CartService {
	serviceLog := log.With("service", "CartService")
	if taxRateBP < 0 {
		taxRateBP = 0
	}
	return &cartService{
		db:           db,
		log:          serviceLog,
		cartRepo:     cartRepo,
		cartLineRepo: cartLineRepo,
		countCache:   countCache,
		taxRateBP:    taxRateBP,
	}
}

func (cs *cartService) AddToCart(ctx context.Context, owner types.CartOwner, productID uuid.UUID, variations []*types.Variation) (*types.CartLine, error) {
	// Two racing adds from one owner serialize here; the surrounding
	// transaction keeps the read-then-write against the lines consistent.
	unlock := cs.locks.acquire(owner.CacheKey())
	defer unlock()

	want := variationIDSet(variations)

	var result *types.CartLine
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ref, err := cs.ensureOwnerRef(ctx, tx, owner)
		if err != nil {
			return err
		}

		lines, err := cs.cartLineRepo.ListActiveByOwnerProduct(ctx, tx, ref, productID)
		if err != nil {
			return fmt.Errorf("list cart lines: %w", err)
		}

		var match *types.CartLine
		matches := 0
		for _, line := range lines {
			if sameIDSet(line.VariationIDSet(), want) {
				matches++
				if match == nil {
					match = line
				}
			}
		}
		if matches > 1 {
			// The per-owner uniqueness invariant is violated; keep
			// going on the first line in stable fetch order.
			cs.log.Warn("multiple cart lines share one variation set",
				"product_id", productID, "matches", matches)
		}

		if match != nil {
			match.Quantity++
			if err := cs.cartLineRepo.UpdateQuantity(ctx, tx, match.ID, match.Quantity); err != nil {
				return fmt.Errorf("increment cart line: %w", err)
			}
			result = match
			return nil
		}

		line := &types.CartLine{
			ID:        uuid.New(),
			CartID:    ref.CartID,
			UserID:    ref.UserID,
			ProductID: productID,
			Quantity:  1,
			IsActive:  true,
		}
		if _, err := cs.cartLineRepo.Create(ctx, tx, []*types.CartLine{line}); err != nil {
			return fmt.Errorf("create cart line: %w", err)
		}
		if err := cs.cartLineRepo.AppendVariations(ctx, tx, line, variations); err != nil {
			return fmt.Errorf("attach variations: %w", err)
		}
		line.Variations = variations
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.invalidateCount(ctx, owner)
	return result, nil
}

func (cs *cartService) Decrement(ctx context.Context, owner types.CartOwner, productID, lineID uuid.UUID) error {
	unlock := cs.locks.acquire(owner.CacheKey())
	defer unlock()

	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ref, ok, err := cs.lookupOwnerRef(ctx, tx, owner)
		if err != nil {
			return err
		}
		if !ok {
			cs.log.Debug("decrement on owner without a cart, ignoring", "line_id", lineID)
			return nil
		}
		lines, err := cs.cartLineRepo.GetByOwnerProductAndIDs(ctx, tx, ref, productID, []uuid.UUID{lineID})
		if err != nil {
			return fmt.Errorf("fetch cart line: %w", err)
		}
		if len(lines) == 0 {
			// Missing or foreign line: policy is to swallow, the cart
			// view the caller lands on shows the real state.
			cs.log.Debug("decrement on missing cart line, ignoring", "line_id", lineID)
			return nil
		}
		line := lines[0]
		if line.Quantity > 1 {
			return cs.cartLineRepo.UpdateQuantity(ctx, tx, line.ID, line.Quantity-1)
		}
		return cs.cartLineRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{line.ID})
	})
	if err != nil {
		return err
	}

	cs.invalidateCount(ctx, owner)
	return nil
}

func (cs *cartService) Remove(ctx context.Context, owner types.CartOwner, productID, lineID uuid.UUID) error {
	unlock := cs.locks.acquire(owner.CacheKey())
	defer unlock()

	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ref, ok, err := cs.lookupOwnerRef(ctx, tx, owner)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cart line %s: %w", lineID, apperr.ErrNotFound)
		}
		lines, err := cs.cartLineRepo.GetByOwnerProductAndIDs(ctx, tx, ref, productID, []uuid.UUID{lineID})
		if err != nil {
			return fmt.Errorf("fetch cart line: %w", err)
		}
		if len(lines) == 0 {
			return fmt.Errorf("cart line %s: %w", lineID, apperr.ErrNotFound)
		}
		return cs.cartLineRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{lines[0].ID})
	})
	if err != nil {
		return err
	}

	cs.invalidateCount(ctx, owner)
	return nil
}

func (cs *cartService) ComputeTotals(ctx context.Context, owner types.CartOwner) (types.Totals, []*types.CartLine, error) {
	ref, ok, err := cs.lookupOwnerRef(ctx, nil, owner)
	if err != nil {
		return types.Totals{}, nil, err
	}
	if !ok {
		// No cart yet: zero totals, not an error.
		return types.Totals{}, nil, nil
	}

	lines, err := cs.cartLineRepo.ListActiveByOwner(ctx, nil, ref)
	if err != nil {
		return types.Totals{}, nil, fmt.Errorf("list cart lines: %w", err)
	}

	var totals types.Totals
	for _, line := range lines {
		if line.Product == nil {
			cs.log.Warn("cart line without product, skipping in totals", "line_id", line.ID)
			continue
		}
		totals.SubtotalCents += line.Product.PriceCents * int64(line.Quantity)
		totals.Quantity += line.Quantity
	}
	totals.TaxCents = taxFor(totals.SubtotalCents, cs.taxRateBP)
	totals.GrandTotalCents = totals.SubtotalCents + totals.TaxCents
	return totals, lines, nil
}

func (cs *cartService) CartCount(ctx context.Context, owner types.CartOwner) (int, error) {
	if cs.countCache != nil {
		if n, hit, err := cs.countCache.Get(ctx, owner.CacheKey()); err == nil && hit {
			return n, nil
		}
	}

	ref, ok, err := cs.lookupOwnerRef(ctx, nil, owner)
	if err != nil {
		return 0, err
	}
	count := 0
	if ok {
		count, err = cs.cartLineRepo.SumActiveQuantityByOwner(ctx, nil, ref)
		if err != nil {
			return 0, fmt.Errorf("sum cart quantity: %w", err)
		}
	}

	if cs.countCache != nil {
		if err := cs.countCache.Set(ctx, owner.CacheKey(), count); err != nil {
			cs.log.Warn("cart count cache set failed", "error", err)
		}
	}
	return count, nil
}

// ensureOwnerRef resolves an owner to a storage reference, lazily creating
// the session cart for anonymous owners.
func (cs *cartService) ensureOwnerRef(ctx context.Context, tx *gorm.DB, owner types.CartOwner) (types.LineOwnerRef, error) {
	if owner.IsUser() {
		return types.UserRef(owner.UserID()), nil
	}
	cart, err := cs.cartRepo.GetOrCreateBySessionKey(ctx, tx, &types.Cart{
		ID:         uuid.New(),
		SessionKey: owner.SessionKey(),
	})
	if err != nil {
		return types.LineOwnerRef{}, fmt.Errorf("get or create cart: %w", err)
	}
	return types.CartRef(cart.ID), nil
}

// lookupOwnerRef is the non-creating variant used on the read paths.
func (cs *cartService) lookupOwnerRef(ctx context.Context, tx *gorm.DB, owner types.CartOwner) (types.LineOwnerRef, bool, error) {
	if owner.IsUser() {
		return types.UserRef(owner.UserID()), true, nil
	}
	carts, err := cs.cartRepo.GetBySessionKeys(ctx, tx, []string{owner.SessionKey()})
	if err != nil {
		return types.LineOwnerRef{}, false, fmt.Errorf("get cart: %w", err)
	}
	if len(carts) == 0 {
		return types.LineOwnerRef{}, false, nil
	}
	return types.CartRef(carts[0].ID), true, nil
}

func (cs *cartService) invalidateCount(ctx context.Context, owner types.CartOwner) {
	if cs.countCache == nil {
		return
	}
	if err := cs.countCache.Invalidate(ctx, owner.CacheKey()); err != nil {
		cs.log.Warn("cart count cache invalidate failed", "error", err)
	}
}

// taxFor applies a basis-point rate to integer cents, rounding half up.
func taxFor(subtotalCents, rateBP int64) int64 {
	if subtotalCents <= 0 || rateBP <= 0 {
		return 0
	}
	return (subtotalCents*rateBP + 5000) / 10000
}

func variationIDSet(variations []*types.Variation) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(variations))
	for _, v := range variations {
		if v != nil {
			set[v.ID] = struct{}{}
		}
	}
	return set
}

// sameIDSet is true set equality: an empty set matches only another empty set.
func sameIDSet(a, b map[uuid.UUID]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

// ownerLocks hands out one mutex per owner key and frees entries once the
// last holder releases, so idle sessions do not accumulate.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

func (ol *ownerLocks) acquire(key string) func() {
	ol.mu.Lock()
	if ol.locks == nil {
		ol.locks = make(map[string]*ownerLock)
	}
	l := ol.locks[key]
	if l == nil {
		l = &ownerLock{}
		ol.locks[key] = l
	}
	l.refs++
	ol.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		ol.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(ol.locks, key)
		}
		ol.mu.Unlock()
	}
}
