package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/sarunks7/storely-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		IsActive:  true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string, priceCents int64) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:          uuid.New(),
		Name:        slug,
		Slug:        slug,
		PriceCents:  priceCents,
		Stock:       10,
		IsAvailable: true,
		Metadata:    datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedVariation(tb testing.TB, ctx context.Context, tx *gorm.DB, productID uuid.UUID, axis, value string) *types.Variation {
	tb.Helper()
	v := &types.Variation{
		ID:        uuid.New(),
		ProductID: productID,
		Axis:      axis,
		Value:     value,
		IsActive:  true,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed variation: %v", err)
	}
	return v
}

func SeedCart(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionKey string) *types.Cart {
	tb.Helper()
	c := &types.Cart{
		ID:         uuid.New(),
		SessionKey: sessionKey,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed cart: %v", err)
	}
	return c
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
