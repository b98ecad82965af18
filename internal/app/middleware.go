package app

import (
	httpMW "github.com/sarunks7/storely-backend/internal/http/middleware"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}
