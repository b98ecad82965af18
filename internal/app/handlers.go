package app

import (
	httpH "github.com/sarunks7/storely-backend/internal/http/handlers"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type Handlers struct {
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Catalog  *httpH.CatalogHandler
	Cart     *httpH.CartHandler
	Checkout *httpH.CheckoutHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     httpH.NewAuthHandler(serviceset.Auth),
		User:     httpH.NewUserHandler(serviceset.User),
		Catalog:  httpH.NewCatalogHandler(serviceset.Catalog),
		Cart:     httpH.NewCartHandler(serviceset.Identity, serviceset.Cart, serviceset.Catalog, cfg.CartCookieMaxAge()),
		Checkout: httpH.NewCheckoutHandler(serviceset.Identity, serviceset.Checkout),
		Health:   httpH.NewHealthHandler(),
	}
}
