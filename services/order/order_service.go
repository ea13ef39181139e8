// Package order converts a cart or explicit item list into an immutable
// order: price and name are snapshotted at validation time, stock is taken
// through conditional decrements, and the whole placement runs as a
// compensated step sequence so a failure leaves no partial order behind.
package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/apperr"
	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/store"
)

// ProductSource is the product view the workflow validates against and
// takes stock from. In production this is the catalog service, so every
// decrement and compensating increment invalidates its read cache.
type ProductSource interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type Service struct {
	orders   store.OrderStore
	carts    store.CartStore
	products ProductSource

	// trustClientTotal accepts a caller-supplied totalAmount instead of the
	// computed sum. Off by default; the server recomputes.
	trustClientTotal bool
}

func NewService(orders store.OrderStore, carts store.CartStore, products ProductSource, trustClientTotal bool) *Service {
	return &Service{
		orders:           orders,
		carts:            carts,
		products:         products,
		trustClientTotal: trustClientTotal,
	}
}

// ItemRequest is one requested line of an explicit order.
type ItemRequest struct {
	ProductID primitive.ObjectID
	Size      string
	Quantity  int
}

type PlaceRequest struct {
	// Items, when empty, falls back to the user's current cart.
	Items         []ItemRequest
	TotalAmount   *float64
	Address       models.Address
	PaymentStatus string
}

// Place runs the placement workflow: collect line items, validate and
// snapshot each against the current product record, then persist the order,
// take stock and clear the cart as compensated steps.
func (s *Service) Place(ctx context.Context, user primitive.ObjectID, req PlaceRequest) (*models.Order, error) {
	items, err := s.collect(ctx, user, req.Items)
	if err != nil {
		return nil, err
	}

	lines, err := s.validate(ctx, items)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	if s.trustClientTotal && req.TotalAmount != nil && *req.TotalAmount > 0 {
		total = *req.TotalAmount
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}

	now := time.Now()
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		User:          user,
		Receipt:       "rcpt_" + uuid.NewString(),
		Products:      lines,
		TotalAmount:   total,
		Address:       req.Address,
		PaymentStatus: paymentStatus,
		OrderStatus:   models.OrderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	steps := []step{
		&persistOrderStep{orders: s.orders, order: order},
		&decrementStockStep{products: s.products, items: lines},
		&clearCartStep{carts: s.carts, user: user},
	}
	if err := runSteps(ctx, uuid.NewString(), steps); err != nil {
		return nil, err
	}
	return order, nil
}

// collect resolves the line-item source: the explicit list when given,
// otherwise the user's cart.
func (s *Service) collect(ctx context.Context, user primitive.ObjectID, explicit []ItemRequest) ([]ItemRequest, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	cart, err := s.carts.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Products) == 0 {
		return nil, apperr.New(apperr.EmptyOrder, "no products provided and no items in cart")
	}
	items := make([]ItemRequest, 0, len(cart.Products))
	for _, e := range cart.Products {
		items = append(items, ItemRequest{ProductID: e.ProductID, Size: e.Size, Quantity: e.Quantity})
	}
	return items, nil
}

// validate re-fetches every product and freezes its name and new_price into
// the line items. Each item is checked against current stock independently;
// cumulative demand across items for the same product is caught later by
// the conditional decrement, which rolls the placement back.
func (s *Service) validate(ctx context.Context, items []ItemRequest) ([]models.OrderLineItem, error) {
	lines := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, apperr.New(apperr.InvalidArgument, "each product must have a quantity of at least 1")
		}
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.HasSize(item.Size) {
			return nil, apperr.New(apperr.InvalidSize, "invalid size %q for product %q", item.Size, product.Name)
		}
		if item.Quantity > product.Stock {
			return nil, apperr.New(apperr.InsufficientStock, "not enough stock for product %q", product.Name)
		}
		lines = append(lines, models.OrderLineItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.NewPrice,
		})
	}
	return lines, nil
}

func (s *Service) ListForUser(ctx context.Context, user primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, user)
}

func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}
