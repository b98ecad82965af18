package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sarunks7/storely-backend/internal/clients/redis"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
	"github.com/sarunks7/storely-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Identity services.IdentityService
	Catalog  services.CatalogService
	Cart     services.CartService
	Checkout services.CheckoutService

	Sessions redis.SessionStore
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	sessions, err := redis.NewSessionStore(log, cfg.SessionTTL)
	if err != nil {
		return Services{}, fmt.Errorf("init session store: %w", err)
	}
	countCache, err := redis.NewCartCountCache(log, sessions)
	if err != nil {
		return Services{}, fmt.Errorf("init cart count cache: %w", err)
	}

	mailer := services.NewLogMailer(log)
	authSvc := services.NewAuthService(db, log, reposet.User, reposet.UserToken, mailer,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userSvc := services.NewUserService(db, log, reposet.User)
	identitySvc := services.NewIdentityService(log, sessions)
	catalogSvc := services.NewCatalogService(db, log, reposet.Product, reposet.Variation)
	cartSvc := services.NewCartService(db, log, reposet.Cart, reposet.CartLine, countCache, cfg.TaxRateBP)
	checkoutSvc := services.NewCheckoutService(log, cartSvc)

	return Services{
		Auth:     authSvc,
		User:     userSvc,
		Identity: identitySvc,
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Sessions: sessions,
	}, nil
}
