package cart

import "github.com/google/uuid"

// Owner scopes a cart to either an authenticated user or an anonymous
// session. Built through the constructors only, so exactly one side is set.
type Owner struct {
	userID     *uuid.UUID
	sessionKey string
}

func SessionOwner(sessionKey string) Owner {
	return Owner{sessionKey: sessionKey}
}

func UserOwner(userID uuid.UUID) Owner {
	id := userID
	return Owner{userID: &id}
}

func (o Owner) IsUser() bool { return o.userID != nil }

func (o Owner) UserID() uuid.UUID {
	if o.userID == nil {
		return uuid.Nil
	}
	return *o.userID
}

func (o Owner) SessionKey() string { return o.sessionKey }

// CacheKey is a stable string form used for per-owner locks and redis keys.
func (o Owner) CacheKey() string {
	if o.userID != nil {
		return "user:" + o.userID.String()
	}
	return "session:" + o.sessionKey
}

// LineOwnerRef is the storage-level form of an Owner: anonymous owners
// resolve to their Cart row first, users attach lines directly.
type LineOwnerRef struct {
	CartID *uuid.UUID
	UserID *uuid.UUID
}

func CartRef(cartID uuid.UUID) LineOwnerRef {
	id := cartID
	return LineOwnerRef{CartID: &id}
}

func UserRef(userID uuid.UUID) LineOwnerRef {
	id := userID
	return LineOwnerRef{UserID: &id}
}
