package order

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/store"
)

// persistOrderStep writes the order record. Compensation deletes it again —
// the only case an order is ever deleted.
type persistOrderStep struct {
	orders store.OrderStore
	order  *models.Order
}

func (s *persistOrderStep) name() string { return "persist-order" }

func (s *persistOrderStep) execute(ctx context.Context) error {
	return s.orders.Insert(ctx, s.order)
}

func (s *persistOrderStep) compensate(ctx context.Context) error {
	return s.orders.Delete(ctx, s.order.ID)
}

// decrementStockStep takes stock for every line item via the conditional
// decrement. A failure part-way returns the items already taken so
// compensation can restore exactly those.
type decrementStockStep struct {
	products ProductSource
	items    []models.OrderLineItem
	done     []models.OrderLineItem
}

func (s *decrementStockStep) name() string { return "decrement-stock" }

func (s *decrementStockStep) execute(ctx context.Context) error {
	for _, item := range s.items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		s.done = append(s.done, item)
	}
	return nil
}

func (s *decrementStockStep) compensate(ctx context.Context) error {
	var errs []error
	for i := len(s.done) - 1; i >= 0; i-- {
		item := s.done[i]
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// clearCartStep deletes the user's cart after the order is committed. This
// is best-effort: a stale cart is user-visible noise, not an inventory
// error, so a failure is logged and never fails or rolls back the order.
type clearCartStep struct {
	carts store.CartStore
	user  primitive.ObjectID
}

func (s *clearCartStep) name() string { return "clear-cart" }

func (s *clearCartStep) execute(ctx context.Context) error {
	if err := s.carts.Delete(ctx, s.user); err != nil {
		slog.Warn("order: failed to clear cart after order", "user", s.user.Hex(), "err", err)
	}
	return nil
}

func (s *clearCartStep) compensate(context.Context) error { return nil }
