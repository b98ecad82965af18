package services

import (
	"context"
	"fmt"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/pkg/apperr"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

// CheckoutService projects the cart totals for checkout. Same computation as
// the cart view, gated on an authenticated owner.
type CheckoutService interface {
	Project(ctx context.Context, owner types.CartOwner) (types.Totals, []*types.CartLine, error)
}

type checkoutService struct {
	log         *logger.Logger
	cartService CartService
}

func NewCheckoutService(log *logger.Logger, cartService CartService) CheckoutService {
	serviceLog := log.With("service", "CheckoutService")
	return &checkoutService{log: serviceLog, cartService: cartService}
}

func (cs *checkoutService) Project(ctx context.Context, owner types.CartOwner) (types.Totals, []*types.CartLine, error) {
	if !owner.IsUser() {
		return types.Totals{}, nil, fmt.Errorf("checkout requires login: %w", apperr.ErrUnauthenticated)
	}
	return cs.cartService.ComputeTotals(ctx, owner)
}
