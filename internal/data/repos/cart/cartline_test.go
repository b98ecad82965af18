package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/data/repos/testutil"
	types "github.com/sarunks7/storely-backend/internal/domain"
)

func TestCartLineRepoOwnerScoping(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCartLineRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "cartline@example.com")
	p := testutil.SeedProduct(t, ctx, tx, "tee", 1999)
	anonCart := testutil.SeedCart(t, ctx, tx, uuid.New().String())

	userLine := &types.CartLine{
		ID:        uuid.New(),
		UserID:    testutil.PtrUUID(u.ID),
		ProductID: p.ID,
		Quantity:  2,
		IsActive:  true,
	}
	anonLine := &types.CartLine{
		ID:        uuid.New(),
		CartID:    testutil.PtrUUID(anonCart.ID),
		ProductID: p.ID,
		Quantity:  1,
		IsActive:  true,
	}
	if _, err := repo.Create(ctx, tx, []*types.CartLine{userLine, anonLine}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	userRef := types.UserRef(u.ID)
	cartRef := types.CartRef(anonCart.ID)

	userLines, err := repo.ListActiveByOwnerProduct(ctx, tx, userRef, p.ID)
	if err != nil {
		t.Fatalf("ListActiveByOwnerProduct (user): %v", err)
	}
	if len(userLines) != 1 || userLines[0].ID != userLine.ID {
		t.Fatalf("user scope leaked lines: %+v", userLines)
	}

	anonLines, err := repo.ListActiveByOwnerProduct(ctx, tx, cartRef, p.ID)
	if err != nil {
		t.Fatalf("ListActiveByOwnerProduct (cart): %v", err)
	}
	if len(anonLines) != 1 || anonLines[0].ID != anonLine.ID {
		t.Fatalf("cart scope leaked lines: %+v", anonLines)
	}

	sum, err := repo.SumActiveQuantityByOwner(ctx, tx, userRef)
	if err != nil {
		t.Fatalf("SumActiveQuantityByOwner: %v", err)
	}
	if sum != 2 {
		t.Fatalf("SumActiveQuantityByOwner: expected 2, got %d", sum)
	}

	emptySum, err := repo.SumActiveQuantityByOwner(ctx, tx, types.LineOwnerRef{})
	if err != nil {
		t.Fatalf("SumActiveQuantityByOwner (empty ref): %v", err)
	}
	if emptySum != 0 {
		t.Fatalf("empty owner ref must match nothing, got %d", emptySum)
	}
}

func TestCartLineRepoVariationsAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCartLineRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "cartline2@example.com")
	p := testutil.SeedProduct(t, ctx, tx, "hoodie", 4999)
	red := testutil.SeedVariation(t, ctx, tx, p.ID, "color", "red")
	m := testutil.SeedVariation(t, ctx, tx, p.ID, "size", "M")

	line := &types.CartLine{
		ID:        uuid.New(),
		UserID:    testutil.PtrUUID(u.ID),
		ProductID: p.ID,
		Quantity:  1,
		IsActive:  true,
	}
	if _, err := repo.Create(ctx, tx, []*types.CartLine{line}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.AppendVariations(ctx, tx, line, []*types.Variation{red, m}); err != nil {
		t.Fatalf("AppendVariations: %v", err)
	}

	ref := types.UserRef(u.ID)
	lines, err := repo.ListActiveByOwnerProduct(ctx, tx, ref, p.ID)
	if err != nil {
		t.Fatalf("ListActiveByOwnerProduct: %v", err)
	}
	if len(lines) != 1 || len(lines[0].Variations) != 2 {
		t.Fatalf("expected 1 line with 2 variations, got %+v", lines)
	}

	if err := repo.UpdateQuantity(ctx, tx, line.ID, 5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	got, err := repo.GetByOwnerProductAndIDs(ctx, tx, ref, p.ID, []uuid.UUID{line.ID})
	if err != nil {
		t.Fatalf("GetByOwnerProductAndIDs: %v", err)
	}
	if len(got) != 1 || got[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", got)
	}

	if err := repo.FullDeleteByIDs(ctx, tx, []uuid.UUID{line.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	got, err = repo.GetByOwnerProductAndIDs(ctx, tx, ref, p.ID, []uuid.UUID{line.ID})
	if err != nil {
		t.Fatalf("GetByOwnerProductAndIDs after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("line still present after delete: %+v", got)
	}
}
