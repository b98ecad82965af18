package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData carries per-request identity: UserID when the caller presented
// a valid access token, SessionKey when a cart session cookie was attached.
// Either field may be zero; both being zero means a fresh anonymous visitor.
type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       uuid.UUID
	SessionKey   string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
