package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jordanveras/threadline-backend/pkg/localstore"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T, storage localstore.Storage) *Store {
	t.Helper()

	store, err := NewStore(context.Background(), StoreParams{
		Storage: storage,
		Key:     "shopping-cart:test",
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func lineItem(id string, price float64, quantity, maxQuantity int) LineItem {
	return LineItem{
		ID:          id,
		Name:        "Item " + id,
		Price:       decimal.NewFromFloat(price),
		Quantity:    quantity,
		Image:       "https://example.com/" + id + ".jpg",
		MaxQuantity: maxQuantity,
	}
}

func TestNewStoreRequiresDeps(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(context.Background(), StoreParams{Key: "k"}); err == nil {
		t.Fatal("expected error without storage")
	}
	if _, err := NewStore(context.Background(), StoreParams{Storage: localstore.NewMemory()}); err == nil {
		t.Fatal("expected error without key")
	}
}

func TestAddItemMergesAndCaps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())

	store.AddItem(ctx, lineItem("a", 20, 1, 3))
	// the incoming max of 99 must be ignored; the existing line's cap wins
	incoming := lineItem("a", 20, 5, 99)
	store.AddItem(ctx, incoming)

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity capped at 3, got %d", items[0].Quantity)
	}
	if items[0].MaxQuantity != 3 {
		t.Fatalf("existing max should be preserved, got %d", items[0].MaxQuantity)
	}
}

func TestAddItemRepeatedMergeStaysCapped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())

	for i := 0; i < 5; i++ {
		store.AddItem(ctx, lineItem("a", 10, 2, 4))
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestExampleScenarioTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())

	store.AddItem(ctx, lineItem("a", 20, 1, 3))
	store.AddItem(ctx, lineItem("a", 20, 5, 3))

	totals := store.Totals()
	if !totals.Subtotal.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected subtotal 60, got %s", totals.Subtotal)
	}
	if !totals.Tax.Equal(decimal.NewFromFloat(4.8)) {
		t.Fatalf("expected tax 4.8, got %s", totals.Tax)
	}
	if !totals.Shipping.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected shipping 10, got %s", totals.Shipping)
	}
	if !totals.Total.Equal(decimal.NewFromFloat(74.8)) {
		t.Fatalf("expected total 74.8, got %s", totals.Total)
	}
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())
	store.AddItem(ctx, lineItem("a", 15, 1, 5))

	store.UpdateQuantity(ctx, "a", 4)
	if got := store.Items()[0].Quantity; got != 4 {
		t.Fatalf("expected quantity 4, got %d", got)
	}
	subtotal := store.Totals().Subtotal
	if !subtotal.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected subtotal 60, got %s", subtotal)
	}

	// same value twice is idempotent
	store.UpdateQuantity(ctx, "a", 4)
	if !store.Totals().Subtotal.Equal(subtotal) {
		t.Fatal("repeated update changed the subtotal")
	}

	// cap on the high side
	store.UpdateQuantity(ctx, "a", 50)
	if got := store.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected cap at 5, got %d", got)
	}

	// no lower bound is enforced at the store level
	store.UpdateQuantity(ctx, "a", 0)
	if got := store.Items()[0].Quantity; got != 0 {
		t.Fatalf("expected 0 stored as passed, got %d", got)
	}

	// unknown ids are ignored
	store.UpdateQuantity(ctx, "zzz", 9)
	if len(store.Items()) != 1 {
		t.Fatal("update of unknown id altered the item list")
	}
}

func TestRemoveItemAndClearCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())
	store.AddItem(ctx, lineItem("a", 10, 1, 5))
	store.AddItem(ctx, lineItem("b", 20, 2, 5))
	store.MoveToSaveForLater(ctx, "b")
	promo := PromoWelcome10
	store.SetPromoCode(ctx, &promo)

	store.RemoveItem(ctx, "a")
	if len(store.Items()) != 0 {
		t.Fatal("expected empty active list after remove")
	}

	// removing an absent id is a silent no-op
	store.RemoveItem(ctx, "a")

	store.AddItem(ctx, lineItem("c", 5, 1, 5))
	store.ClearCart(ctx)
	if len(store.Items()) != 0 {
		t.Fatal("expected empty active list after clear")
	}
	if len(store.SaveForLater()) != 1 {
		t.Fatal("clear must not touch the saved list")
	}
	if store.PromoCode() == nil || *store.PromoCode() != PromoWelcome10 {
		t.Fatal("clear must not touch the promo code")
	}
}

func TestMoveToSaveForLaterRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())
	store.AddItem(ctx, lineItem("a", 25, 2, 5))

	store.MoveToSaveForLater(ctx, "a")
	if len(store.Items()) != 0 {
		t.Fatal("item should leave the active list")
	}
	saved := store.SaveForLater()
	if len(saved) != 1 || saved[0].Quantity != 2 {
		t.Fatalf("item should land in saved list unchanged, got %+v", saved)
	}

	store.MoveToCart(ctx, "a")
	if len(store.SaveForLater()) != 0 {
		t.Fatal("item should leave the saved list")
	}
	items := store.Items()
	if len(items) != 1 || items[0].ID != "a" || items[0].Quantity != 2 {
		t.Fatalf("item should return to the active list unchanged, got %+v", items)
	}
}

func TestMoveToCartDoesNotMerge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())
	store.AddItem(ctx, lineItem("a", 25, 1, 5))
	store.MoveToSaveForLater(ctx, "a")
	store.AddItem(ctx, lineItem("a", 25, 1, 5))

	store.MoveToCart(ctx, "a")

	// restore appends without the AddItem merge; two lines share the id
	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected duplicate lines, got %d", len(items))
	}
	if items[0].ID != "a" || items[1].ID != "a" {
		t.Fatalf("both lines should carry the same id, got %+v", items)
	}
}

func TestMoveOperationsIgnoreAbsentIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t, localstore.NewMemory())
	store.AddItem(ctx, lineItem("a", 10, 1, 5))

	store.MoveToSaveForLater(ctx, "missing")
	store.MoveToCart(ctx, "missing")

	if len(store.Items()) != 1 || len(store.SaveForLater()) != 0 {
		t.Fatal("moves of absent ids must not alter state")
	}
}

func TestToggleCart(t *testing.T) {
	t.Parallel()

	storage := localstore.NewMemory()
	store := newTestStore(t, storage)

	if store.IsOpen() {
		t.Fatal("drawer should start closed")
	}
	if !store.ToggleCart() {
		t.Fatal("first toggle should open")
	}
	if store.ToggleCart() {
		t.Fatal("second toggle should close")
	}

	// drawer state is session-only and never persisted
	if _, err := storage.Load(context.Background(), "shopping-cart:test"); !errors.Is(err, localstore.ErrNotFound) {
		t.Fatalf("toggle must not write a snapshot, got %v", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := localstore.NewMemory()
	store := newTestStore(t, storage)

	store.AddItem(ctx, lineItem("a", 12.5, 2, 5))
	store.MoveToSaveForLater(ctx, "a")
	store.AddItem(ctx, lineItem("b", 30, 1, 2))
	promo := PromoWelcome10
	store.SetPromoCode(ctx, &promo)

	// a fresh store hydrates the persisted snapshot
	reloaded := newTestStore(t, storage)
	items := reloaded.Items()
	if len(items) != 1 || items[0].ID != "b" {
		t.Fatalf("unexpected active items after reload: %+v", items)
	}
	saved := reloaded.SaveForLater()
	if len(saved) != 1 || saved[0].ID != "a" || !saved[0].Price.Equal(decimal.NewFromFloat(12.5)) {
		t.Fatalf("unexpected saved items after reload: %+v", saved)
	}
	if reloaded.PromoCode() == nil || *reloaded.PromoCode() != PromoWelcome10 {
		t.Fatal("promo code should survive reload")
	}
	if reloaded.IsOpen() {
		t.Fatal("drawer flag must not survive reload")
	}
}

func TestMalformedSnapshotFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := localstore.NewMemory()
	if err := storage.Save(ctx, "shopping-cart:test", []byte("not-json{")); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	store := newTestStore(t, storage)
	if len(store.Items()) != 0 || len(store.SaveForLater()) != 0 || store.PromoCode() != nil {
		t.Fatal("malformed snapshot should hydrate empty defaults")
	}
}

func TestSaveFailuresAreSilent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewStore(ctx, StoreParams{
		Storage: failingStorage{},
		Key:     "shopping-cart:test",
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	// mutations must succeed even though every save fails
	store.AddItem(ctx, lineItem("a", 10, 1, 5))
	store.UpdateQuantity(ctx, "a", 3)
	store.ClearCart(ctx)

	if len(store.Items()) != 0 {
		t.Fatal("in-memory state should remain authoritative")
	}
}

func TestSnapshotShape(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := localstore.NewMemory()
	store := newTestStore(t, storage)
	store.AddItem(ctx, lineItem("a", 10, 1, 5))

	payload, err := storage.Load(ctx, "shopping-cart:test")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	for _, field := range []string{"items", "save_for_later", "promo_code"} {
		if _, ok := raw[field]; !ok {
			t.Fatalf("snapshot missing %q field: %s", field, payload)
		}
	}
	if _, ok := raw["is_open"]; ok {
		t.Fatal("drawer flag must not be serialized")
	}
}

type failingStorage struct{}

func (failingStorage) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, localstore.ErrNotFound
}

func (failingStorage) Save(ctx context.Context, key string, payload []byte) error {
	return errors.New("quota exceeded")
}
