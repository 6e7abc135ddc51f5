package stock

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	stocks map[primitive.ObjectID]int
	failOn primitive.ObjectID
	calls  int
}

var errInjected = errors.New("injected store failure")

func (f *fakeStore) IncStock(_ context.Context, id primitive.ObjectID, delta int) error {
	f.calls++
	if id == f.failOn {
		return errInjected
	}
	if _, ok := f.stocks[id]; !ok {
		return ErrProductNotFound
	}
	f.stocks[id] += delta
	return nil
}

func newFake(stocks map[primitive.ObjectID]int) *fakeStore {
	return &fakeStore{stocks: stocks}
}

func TestApplyDecrementsOnlyReferencedProducts(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	other := primitive.NewObjectID()
	store := newFake(map[primitive.ObjectID]int{a: 10, b: 4, other: 7})

	err := NewAdjuster(store).Apply(context.Background(), []Line{
		{ProductID: a, Quantity: 3},
		{ProductID: b, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if store.stocks[a] != 7 {
		t.Errorf("product a stock = %d, want 7", store.stocks[a])
	}
	if store.stocks[b] != 3 {
		t.Errorf("product b stock = %d, want 3", store.stocks[b])
	}
	if store.stocks[other] != 7 {
		t.Errorf("untouched product stock = %d, want 7", store.stocks[other])
	}
}

func TestRevertAfterApplyIsIdentity(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	store := newFake(map[primitive.ObjectID]int{a: 10, b: 5})
	lines := []Line{
		{ProductID: a, Quantity: 3},
		{ProductID: b, Quantity: 5},
	}

	adj := NewAdjuster(store)
	if err := adj.Apply(context.Background(), lines); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := adj.Revert(context.Background(), lines); err != nil {
		t.Fatalf("Revert: %v", err)
	}

	if store.stocks[a] != 10 || store.stocks[b] != 5 {
		t.Errorf("stocks after round trip = %d/%d, want 10/5", store.stocks[a], store.stocks[b])
	}
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	// Create an order for 3 of a product with stock 10, then delete it.
	a := primitive.NewObjectID()
	store := newFake(map[primitive.ObjectID]int{a: 10})
	lines := []Line{{ProductID: a, Quantity: 3}}

	adj := NewAdjuster(store)
	if err := adj.Apply(context.Background(), lines); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if store.stocks[a] != 7 {
		t.Fatalf("stock after sale = %d, want 7", store.stocks[a])
	}
	if err := adj.Revert(context.Background(), lines); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if store.stocks[a] != 10 {
		t.Errorf("stock after delete = %d, want 10", store.stocks[a])
	}
}

func TestSwapAppliesNetDelta(t *testing.T) {
	// Edit [{a, qty 2}] into [{a, qty 5}]: net stock change is -3.
	a := primitive.NewObjectID()
	store := newFake(map[primitive.ObjectID]int{a: 20})

	adj := NewAdjuster(store)
	if err := adj.Apply(context.Background(), []Line{{ProductID: a, Quantity: 2}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	before := store.stocks[a]

	err := adj.Swap(context.Background(),
		[]Line{{ProductID: a, Quantity: 2}},
		[]Line{{ProductID: a, Quantity: 5}},
	)
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}

	if got := before - store.stocks[a]; got != 3 {
		t.Errorf("net stock decrease = %d, want 3", got)
	}
}

func TestSuccessiveEditsRevertTheLatestCommittedLines(t *testing.T) {
	// Each edit must revert the version that is actually stored, not the one
	// that existed when the first edit began. v0 qty 2 -> v1 qty 5 -> v2 qty 1
	// ends with exactly 1 unit deducted from the starting stock.
	a := primitive.NewObjectID()
	store := newFake(map[primitive.ObjectID]int{a: 10})
	adj := NewAdjuster(store)

	committed := []Line{{ProductID: a, Quantity: 2}}
	if err := adj.Apply(context.Background(), committed); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, next := range [][]Line{
		{{ProductID: a, Quantity: 5}},
		{{ProductID: a, Quantity: 1}},
	} {
		if err := adj.Swap(context.Background(), committed, next); err != nil {
			t.Fatalf("Swap: %v", err)
		}
		committed = next
	}

	if store.stocks[a] != 9 {
		t.Errorf("stock after edit chain = %d, want 9", store.stocks[a])
	}
}

func TestSaleAllowsNegativeStock(t *testing.T) {
	a := primitive.NewObjectID()
	store := newFake(map[primitive.ObjectID]int{a: 1})

	err := NewAdjuster(store).Apply(context.Background(), []Line{{ProductID: a, Quantity: 4}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if store.stocks[a] != -3 {
		t.Errorf("stock = %d, want -3 (oversell is recorded, not blocked)", store.stocks[a])
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	a := primitive.NewObjectID()
	bad := primitive.NewObjectID()
	c := primitive.NewObjectID()
	store := newFake(map[primitive.ObjectID]int{a: 10, c: 10})
	store.failOn = bad

	err := NewAdjuster(store).Apply(context.Background(), []Line{
		{ProductID: a, Quantity: 1},
		{ProductID: bad, Quantity: 1},
		{ProductID: c, Quantity: 1},
	})
	if !errors.Is(err, errInjected) {
		t.Fatalf("Apply error = %v, want injected failure", err)
	}
	if store.stocks[c] != 10 {
		t.Errorf("line after the failure was applied: stock = %d, want 10", store.stocks[c])
	}
}

func TestApplyUnknownProduct(t *testing.T) {
	store := newFake(map[primitive.ObjectID]int{})

	err := NewAdjuster(store).Apply(context.Background(), []Line{
		{ProductID: primitive.NewObjectID(), Quantity: 1},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Apply error = %v, want ErrProductNotFound", err)
	}
}
