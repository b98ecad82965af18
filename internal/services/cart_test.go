package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/sarunks7/storely-backend/internal/data/repos"
	"github.com/sarunks7/storely-backend/internal/data/repos/testutil"
	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/pkg/apperr"
)

const testTaxRateBP = 500

func newCartServiceForTest(t *testing.T) (CartService, *fakeCountCache) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cache := newFakeCountCache()
	svc := NewCartService(
		db,
		log,
		repos.NewCartRepo(db, log),
		repos.NewCartLineRepo(db, log),
		cache,
		testTaxRateBP,
	)
	return svc, cache
}

func sessionOwnerForTest() types.CartOwner {
	return types.SessionOwner(fmt.Sprintf("test-session-%s", uuid.New()))
}

func TestAddToCartSameSelectionIncrements(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartServiceForTest(t)
	db := testutil.DB(t)

	owner := sessionOwnerForTest()
	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("tee-%s", uuid.New()), 1999)
	size := testutil.SeedVariation(t, ctx, db, product.ID, "size", "M")

	var line *types.CartLine
	for i := 0; i < 3; i++ {
		var err error
		line, err = svc.AddToCart(ctx, owner, product.ID, []*types.Variation{size})
		if err != nil {
			t.Fatalf("AddToCart #%d: %v", i+1, err)
		}
	}
	if line.Quantity != 3 {
		t.Fatalf("quantity: want=3 got=%d", line.Quantity)
	}

	count, err := svc.CartCount(ctx, owner)
	if err != nil {
		t.Fatalf("CartCount: %v", err)
	}
	if count != 3 {
		t.Fatalf("count: want=3 got=%d", count)
	}
}

func TestAddToCartConcurrentAddsSerialize(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartServiceForTest(t)
	db := testutil.DB(t)

	owner := sessionOwnerForTest()
	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("tee-%s", uuid.New()), 1999)

	// Racing adds for one owner must serialize on the per-owner lock:
	// exactly one line, quantity equal to the number of adds.
	const adds = 10
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddToCart(ctx, owner, product.ID, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent AddToCart: %v", err)
		}
	}

	totals, lines, err := svc.ComputeTotals(ctx, owner)
	if err != nil {
		t.Fatalf("ComputeTotals: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("lines: want=1 got=%d", len(lines))
	}
	if lines[0].Quantity != adds {
		t.Fatalf("quantity: want=%d got=%d", adds, lines[0].Quantity)
	}
	if totals.Quantity != adds {
		t.Fatalf("totals quantity: want=%d got=%d", adds, totals.Quantity)
	}
}

func TestAddToCartDistinctSelectionsCreateDistinctLines(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartServiceForTest(t)
	db := testutil.DB(t)

	owner := sessionOwnerForTest()
	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("tee-%s", uuid.New()), 1999)
	sizeM := testutil.SeedVariation(t, ctx, db, product.ID, "size", "M")
	sizeL := testutil.SeedVariation(t, ctx, db, product.ID, "size", "L")

	lineM, err := svc.AddToCart(ctx, owner, product.ID, []*types.Variation{sizeM})
	if err != nil {
		t.Fatalf("AddToCart size M: %v", err)
	}
	lineL, err := svc.AddToCart(ctx, owner, product.ID, []*types.Variation{sizeL})
	if err != nil {
		t.Fatalf("AddToCart size L: %v", err)
	}
	linePlain, err := svc.AddToCart(ctx, owner, product.ID, nil)
	if err != nil {
		t.Fatalf("AddToCart no variations: %v", err)
	}

	if lineM.ID == lineL.ID || lineM.ID == linePlain.ID || lineL.ID == linePlain.ID {
		t.Fatalf("expected three distinct lines, got %s %s %s", lineM.ID, lineL.ID, linePlain.ID)
	}

	// The bare line matches only the bare selection, never a subset of a
	// variation line.
	linePlain2, err := svc.AddToCart(ctx, owner, product.ID, nil)
	if err != nil {
		t.Fatalf("AddToCart no variations again: %v", err)
	}
	if linePlain2.ID != linePlain.ID {
		t.Fatalf("bare selection should re-use bare line: want=%s got=%s", linePlain.ID, linePlain2.ID)
	}
	if linePlain2.Quantity != 2 {
		t.Fatalf("bare line quantity: want=2 got=%d", linePlain2.Quantity)
	}
}

func TestAddToCartUserOwnerSkipsSessionCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartServiceForTest(t)
	db := testutil.DB(t)

	user := testutil.SeedUser(t, ctx, db, fmt.Sprintf("cart-%s@example.com", uuid.New()))
	owner := types.UserOwner(user.ID)
	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("mug-%s", uuid.New()), 899)

	line, err := svc.AddToCart(ctx, owner, product.ID, nil)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if line.UserID == nil || *line.UserID != user.ID {
		t.Fatalf("line user id: want=%s got=%v", user.ID, line.UserID)
	}
	if line.CartID != nil {
		t.Fatalf("authenticated line should not reference a session cart, got %v", line.CartID)
	}
}

func TestDecrement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartServiceForTest(t)
	db := testutil.DB(t)

	owner := sessionOwnerForTest()
	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("cap-%s", uuid.New()), 1500)

	line, err := svc.AddToCart(ctx, owner, product.ID, nil)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if _, err := svc.AddToCart(ctx, owner, product.ID, nil); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if err := svc.Decrement(ctx, owner, product.ID, line.ID); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	count, err := svc.CartCount(ctx, owner)
	if err != nil {
		t.Fatalf("CartCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after decrement: want=1 got=%d", count)
	}

	// Hitting zero deletes the line.
	if err := svc.Decrement(ctx, owner, product.ID, line.ID); err != nil {
		t.Fatalf("Decrement to zero: %v", err)
	}
	count, err = svc.CartCount(ctx, owner)
	if err != nil {
		t.Fatalf("CartCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after delete: want=0 got=%d", count)
	}

	// A gone line is a no-op, not an error.
	if err := svc.Decrement(ctx, owner, product.ID, line.ID); err != nil {
		t.Fatalf("Decrement on missing line: %v", err)
	}
	if err := svc.Decrement(ctx, sessionOwnerForTest(), product.ID, line.ID); err != nil {
		t.Fatalf("Decrement for owner without a cart: %v", err)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartServiceForTest(t)
	db := testutil.DB(t)

	owner := sessionOwnerForTest()
	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("hat-%s", uuid.New()), 2500)

	line, err := svc.AddToCart(ctx, owner, product.ID, nil)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := svc.Remove(ctx, owner, product.ID, line.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if err := svc.Remove(ctx, owner, product.ID, line.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Remove on missing line: want ErrNotFound got %v", err)
	}
	if err := svc.Remove(ctx, sessionOwnerForTest(), product.ID, line.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Remove for owner without a cart: want ErrNotFound got %v", err)
	}
}

func TestComputeTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartServiceForTest(t)
	db := testutil.DB(t)

	owner := sessionOwnerForTest()

	totals, lines, err := svc.ComputeTotals(ctx, owner)
	if err != nil {
		t.Fatalf("ComputeTotals on empty owner: %v", err)
	}
	if totals != (types.Totals{}) || len(lines) != 0 {
		t.Fatalf("empty owner totals: want zero got %+v (%d lines)", totals, len(lines))
	}

	tee := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("tee-%s", uuid.New()), 1999)
	mug := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("mug-%s", uuid.New()), 899)
	if _, err := svc.AddToCart(ctx, owner, tee.ID, nil); err != nil {
		t.Fatalf("AddToCart tee: %v", err)
	}
	if _, err := svc.AddToCart(ctx, owner, tee.ID, nil); err != nil {
		t.Fatalf("AddToCart tee: %v", err)
	}
	if _, err := svc.AddToCart(ctx, owner, mug.ID, nil); err != nil {
		t.Fatalf("AddToCart mug: %v", err)
	}

	totals, lines, err = svc.ComputeTotals(ctx, owner)
	if err != nil {
		t.Fatalf("ComputeTotals: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines: want=2 got=%d", len(lines))
	}
	wantSubtotal := int64(2*1999 + 899)
	if totals.SubtotalCents != wantSubtotal {
		t.Fatalf("subtotal: want=%d got=%d", wantSubtotal, totals.SubtotalCents)
	}
	if totals.Quantity != 3 {
		t.Fatalf("quantity: want=3 got=%d", totals.Quantity)
	}
	wantTax := taxFor(wantSubtotal, testTaxRateBP)
	if totals.TaxCents != wantTax {
		t.Fatalf("tax: want=%d got=%d", wantTax, totals.TaxCents)
	}
	if totals.GrandTotalCents != wantSubtotal+wantTax {
		t.Fatalf("grand total: want=%d got=%d", wantSubtotal+wantTax, totals.GrandTotalCents)
	}
}

func TestTaxFor(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		rateBP   int64
		want     int64
	}{
		{"exact", 10000, 500, 500},
		{"rounds half up", 1050, 500, 53},
		{"rounds up above half", 999, 500, 50},
		{"rounds down below half", 1001, 500, 50},
		{"zero subtotal", 0, 500, 0},
		{"negative subtotal", -100, 500, 0},
		{"zero rate", 10000, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := taxFor(tc.subtotal, tc.rateBP); got != tc.want {
				t.Fatalf("taxFor(%d, %d): want=%d got=%d", tc.subtotal, tc.rateBP, tc.want, got)
			}
		})
	}
}

func TestCartCountCached(t *testing.T) {
	ctx := context.Background()
	svc, cache := newCartServiceForTest(t)
	db := testutil.DB(t)

	owner := sessionOwnerForTest()
	product := testutil.SeedProduct(t, ctx, db, fmt.Sprintf("pin-%s", uuid.New()), 500)

	line, err := svc.AddToCart(ctx, owner, product.ID, nil)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if len(cache.invalidated) == 0 {
		t.Fatalf("expected AddToCart to invalidate the count cache")
	}

	if _, err := svc.CartCount(ctx, owner); err != nil {
		t.Fatalf("CartCount: %v", err)
	}
	// A poisoned entry proves the hit path short-circuits the database.
	if err := cache.Set(ctx, owner.CacheKey(), 42); err != nil {
		t.Fatalf("cache set: %v", err)
	}
	count, err := svc.CartCount(ctx, owner)
	if err != nil {
		t.Fatalf("CartCount: %v", err)
	}
	if count != 42 {
		t.Fatalf("cached count: want=42 got=%d", count)
	}

	if err := svc.Remove(ctx, owner, product.ID, line.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	count, err = svc.CartCount(ctx, owner)
	if err != nil {
		t.Fatalf("CartCount after remove: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after remove: want=0 got=%d", count)
	}
}
