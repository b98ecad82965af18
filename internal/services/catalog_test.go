package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/data/repos"
	"github.com/sarunks7/storely-backend/internal/data/repos/testutil"
	"github.com/sarunks7/storely-backend/internal/pkg/apperr"
)

func newCatalogServiceForTest(t *testing.T) CatalogService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewCatalogService(db, log, repos.NewProductRepo(db, log), repos.NewVariationRepo(db, log))
}

func TestMatchVariationsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogServiceForTest(t)
	db := testutil.DB(t)

	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("tee-%s", uuid.New()), 1999)
	size := testutil.SeedVariation(t, ctx, db, product.ID, "Size", "Medium")

	matched, err := svc.MatchVariations(ctx, product.ID, []VariationSelection{
		{Axis: "size", Value: "MEDIUM"},
	})
	if err != nil {
		t.Fatalf("MatchVariations: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != size.ID {
		t.Fatalf("want the seeded variation, got %d matches", len(matched))
	}
}

func TestMatchVariationsDropsUnknownPairs(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogServiceForTest(t)
	db := testutil.DB(t)

	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("tee-%s", uuid.New()), 1999)
	size := testutil.SeedVariation(t, ctx, db, product.ID, "size", "M")

	matched, err := svc.MatchVariations(ctx, product.ID, []VariationSelection{
		{Axis: "size", Value: "M"},
		{Axis: "size", Value: "XXL"},
		{Axis: "color", Value: "plaid"},
		{Axis: "  ", Value: "M"},
		{Axis: "size", Value: " m "},
	})
	if err != nil {
		t.Fatalf("MatchVariations: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != size.ID {
		t.Fatalf("want just the one real match, got %d", len(matched))
	}
}

func TestGetProductBySlug(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogServiceForTest(t)
	db := testutil.DB(t)

	slug := fmt.Sprintf("mug-%s", uuid.New())
	seeded := testutil.SeedProduct(t, ctx, db, slug, 899)

	got, err := svc.GetProductBySlug(ctx, slug)
	if err != nil {
		t.Fatalf("GetProductBySlug: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("product id: want=%s got=%s", seeded.ID, got.ID)
	}

	if _, err := svc.GetProductBySlug(ctx, "no-such-slug"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing slug: want ErrNotFound got %v", err)
	}
	if _, err := svc.GetProduct(ctx, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing id: want ErrNotFound got %v", err)
	}
}
