// Package stock keeps Product.stock consistent with outstanding order and
// purchase quantities. Sales decrement, deletions and sale returns increment,
// purchase receipt increments, purchase returns decrement.
package stock

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProductNotFound = errors.New("product not found")

// Line pairs a product with a quantity taken from an order or purchase.
type Line struct {
	ProductID primitive.ObjectID
	Quantity  int
}

// Store applies a single stock delta. The mongo implementation uses $inc;
// tests substitute an in-memory map.
type Store interface {
	IncStock(ctx context.Context, productID primitive.ObjectID, delta int) error
}

type Adjuster struct {
	store Store
}

func NewAdjuster(store Store) *Adjuster {
	return &Adjuster{store: store}
}

// Apply decrements stock by each line's quantity, as when a sale is made.
// Stock is deliberately allowed to go negative; oversell shows up in the data
// instead of blocking the till. The first failing line aborts the loop, so
// callers run Apply inside a transaction to avoid half-applied batches.
func (a *Adjuster) Apply(ctx context.Context, lines []Line) error {
	for _, l := range lines {
		if err := a.store.IncStock(ctx, l.ProductID, -l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Revert increments stock by each line's quantity, undoing a prior Apply or
// recording inbound goods. Revert(lines) after Apply(lines) is a stock no-op.
func (a *Adjuster) Revert(ctx context.Context, lines []Line) error {
	for _, l := range lines {
		if err := a.store.IncStock(ctx, l.ProductID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Swap undoes every line of the previous version and applies every line of
// the new one. Edits always do the full reversal rather than a diff.
func (a *Adjuster) Swap(ctx context.Context, previous, current []Line) error {
	if err := a.Revert(ctx, previous); err != nil {
		return err
	}
	return a.Apply(ctx, current)
}
