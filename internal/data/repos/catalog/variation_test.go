package catalog

import (
	"context"
	"testing"

	"github.com/sarunks7/storely-backend/internal/data/repos/testutil"
)

func TestVariationRepoCaseInsensitiveLookup(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewVariationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProduct(t, ctx, tx, "cap", 1299)
	other := testutil.SeedProduct(t, ctx, tx, "scarf", 999)
	red := testutil.SeedVariation(t, ctx, tx, p.ID, "Color", "Red")
	testutil.SeedVariation(t, ctx, tx, other.ID, "Color", "Red")

	got, err := repo.GetByProductAxisValue(ctx, tx, p.ID, "color", "RED")
	if err != nil {
		t.Fatalf("GetByProductAxisValue: %v", err)
	}
	if len(got) != 1 || got[0].ID != red.ID {
		t.Fatalf("expected case-insensitive match scoped to product, got %+v", got)
	}

	got, err = repo.GetByProductAxisValue(ctx, tx, p.ID, "color", "green")
	if err != nil {
		t.Fatalf("GetByProductAxisValue (missing): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no match for unknown value, got %+v", got)
	}
}
