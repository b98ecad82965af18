package app

import (
	apphttp "github.com/sarunks7/storely-backend/internal/http"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:             log,
		AuthMiddleware:  middleware.Auth,
		AllowedOrigins:  cfg.AllowedOrigins,
		AuthHandler:     handlers.Auth,
		UserHandler:     handlers.User,
		CatalogHandler:  handlers.Catalog,
		CartHandler:     handlers.Cart,
		CheckoutHandler: handlers.Checkout,
		HealthHandler:   handlers.Health,
	})
}
