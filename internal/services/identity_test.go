package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/data/repos/testutil"
	"github.com/sarunks7/storely-backend/internal/platform/ctxutil"
)

func TestResolveOwnerPrefersAuthenticatedUser(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewIdentityService(testutil.Logger(t), store)

	userID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID:     userID,
		SessionKey: "some-session",
	})

	owner, minted := svc.ResolveOwner(ctx)
	if !owner.IsUser() || owner.UserID() != userID {
		t.Fatalf("want user owner %s, got %+v", userID, owner)
	}
	if minted != "" {
		t.Fatalf("authenticated requests never mint a session, got %q", minted)
	}
}

func TestResolveOwnerKeepsValidSession(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewIdentityService(testutil.Logger(t), store)

	key, err := store.Issue(context.Background())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{SessionKey: key})

	owner, minted := svc.ResolveOwner(ctx)
	if owner.IsUser() || owner.SessionKey() != key {
		t.Fatalf("want session owner %q, got %+v", key, owner)
	}
	if minted != "" {
		t.Fatalf("valid session should not mint, got %q", minted)
	}
}

func TestResolveOwnerMintsWhenSessionMissingOrStale(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewIdentityService(testutil.Logger(t), store)

	owner, minted := svc.ResolveOwner(context.Background())
	if owner.IsUser() || minted == "" {
		t.Fatalf("bare request should mint a session owner, got %+v minted=%q", owner, minted)
	}
	if owner.SessionKey() != minted {
		t.Fatalf("minted key mismatch: owner=%q minted=%q", owner.SessionKey(), minted)
	}

	// A key the store no longer recognizes gets replaced.
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{SessionKey: "stale-key"})
	owner, minted = svc.ResolveOwner(ctx)
	if minted == "" || owner.SessionKey() == "stale-key" {
		t.Fatalf("stale session should be replaced, got %q minted=%q", owner.SessionKey(), minted)
	}
}

func TestResolveOwnerTrustsPresentedKeyWhenStoreDown(t *testing.T) {
	store := newFakeSessionStore()
	store.failed = true
	svc := NewIdentityService(testutil.Logger(t), store)

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{SessionKey: "presented"})
	owner, minted := svc.ResolveOwner(ctx)
	if owner.SessionKey() != "presented" || minted != "" {
		t.Fatalf("store outage should keep the presented key, got %q minted=%q", owner.SessionKey(), minted)
	}

	// With no key at all, a local one still comes back.
	owner, minted = svc.ResolveOwner(context.Background())
	if minted == "" || owner.SessionKey() != minted {
		t.Fatalf("store outage should still mint locally, got %q minted=%q", owner.SessionKey(), minted)
	}
}
