package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/sarunks7/storely-backend/internal/http/handlers"
	httpMW "github.com/sarunks7/storely-backend/internal/http/middleware"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware
	AllowedOrigins []string

	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	CatalogHandler  *httpH.CatalogHandler
	CartHandler     *httpH.CartHandler
	CheckoutHandler *httpH.CheckoutHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Accounts (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.GET("/activate", cfg.AuthHandler.Activate)
			api.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
			api.POST("/reset-password", cfg.AuthHandler.ResetPassword)
		}

		// Catalog (public)
		if cfg.CatalogHandler != nil {
			api.GET("/products", cfg.CatalogHandler.ListProducts)
			api.GET("/products/:slug", cfg.CatalogHandler.GetProduct)
		}
	}

	// Cart works for both visitors and logged-in users; a valid token
	// switches the owner, a missing one falls back to the session cart.
	cart := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			cart.Use(cfg.AuthMiddleware.OptionalAuth())
		}
		if cfg.CartHandler != nil {
			cart.GET("/cart", cfg.CartHandler.ViewCart)
			cart.GET("/cart/count", cfg.CartHandler.CartCount)
			cart.POST("/cart/items/:product_id", cfg.CartHandler.AddItem)
			cart.POST("/cart/items/:product_id/:line_id/decrement", cfg.CartHandler.DecrementItem)
			cart.DELETE("/cart/items/:product_id/:line_id", cfg.CartHandler.RemoveItem)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}
		if cfg.CheckoutHandler != nil {
			protected.GET("/checkout", cfg.CheckoutHandler.Checkout)
		}
	}

	return r
}
