package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/clients/redis"
	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/platform/ctxutil"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

// IdentityService resolves the cart owner for a request: the authenticated
// user when one is present, otherwise the request's anonymous session,
// minting one when the visitor has none yet.
type IdentityService interface {
	// ResolveOwner never fails. mintedKey is non-empty when a new session
	// was created; the transport layer must hand it back to the client.
	ResolveOwner(ctx context.Context) (owner types.CartOwner, mintedKey string)
}

type identityService struct {
	log      *logger.Logger
	sessions redis.SessionStore
}

func NewIdentityService(log *logger.Logger, sessions redis.SessionStore) IdentityService {
	serviceLog := log.With("service", "IdentityService")
	return &identityService{log: serviceLog, sessions: sessions}
}

func (is *identityService) ResolveOwner(ctx context.Context) (types.CartOwner, string) {
	rd := ctxutil.GetRequestData(ctx)
	if rd != nil && rd.UserID != uuid.Nil {
		return types.UserOwner(rd.UserID), ""
	}

	if rd != nil && rd.SessionKey != "" {
		valid, err := is.sessions.Valid(ctx, rd.SessionKey)
		if err != nil {
			// Store unavailable: trust the presented key rather than
			// churning the visitor's cart.
			is.log.Warn("session store validation failed, accepting presented key", "error", err)
			return types.SessionOwner(rd.SessionKey), ""
		}
		if valid {
			return types.SessionOwner(rd.SessionKey), ""
		}
	}

	key, err := is.sessions.Issue(ctx)
	if err != nil {
		is.log.Warn("session store issue failed, minting local key", "error", err)
		key = uuid.New().String()
	}
	return types.SessionOwner(key), key
}
