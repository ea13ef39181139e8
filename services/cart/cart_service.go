// Package cart implements the per-user cart mutation engine: add with
// summed-quantity upserts, absolute quantity updates, size-aware removal and
// guest-cart reconciliation.
package cart

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/apperr"
	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/store"
)

type Service struct {
	carts    store.CartStore
	products store.ProductStore
	mergeLog store.MergeLogStore
}

func NewService(carts store.CartStore, products store.ProductStore, mergeLog store.MergeLogStore) *Service {
	return &Service{carts: carts, products: products, mergeLog: mergeLog}
}

// validate re-fetches the product and checks size and stock against the
// requested total quantity. The check is advisory: it reads the current
// stock snapshot without locking. The write that follows is atomic per
// entry, and the order workflow's conditional decrement is the final guard.
func (s *Service) validate(ctx context.Context, productID primitive.ObjectID, size string, total int) (*models.Product, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.HasSize(size) {
		return nil, apperr.New(apperr.InvalidSize, "invalid size %q for product %q", size, product.Name)
	}
	if product.Stock <= 0 {
		return nil, apperr.New(apperr.OutOfStock, "product %q is out of stock", product.Name)
	}
	if total > product.Stock {
		return nil, apperr.New(apperr.InsufficientStock, "not enough stock for product %q", product.Name)
	}
	return product, nil
}

// Add upserts a (productID, size) entry, summing quantities with any existing
// entry. The cart is created lazily on first add.
func (s *Service) Add(ctx context.Context, user, productID primitive.ObjectID, size string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.InvalidArgument, "quantity must be at least 1")
	}
	if size == "" {
		return nil, apperr.New(apperr.InvalidArgument, "size is required")
	}

	cart, err := s.carts.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	existing := 0
	if cart != nil {
		if e := cart.Entry(productID, size); e != nil {
			existing = e.Quantity
		}
	}

	if _, err := s.validate(ctx, productID, size, existing+quantity); err != nil {
		return nil, err
	}

	if existing > 0 {
		matched, err := s.carts.IncrementEntry(ctx, user, productID, size, quantity)
		if err != nil {
			return nil, err
		}
		// The entry vanished between read and write; fall through to a push.
		if !matched {
			if err := s.carts.PushEntry(ctx, user, models.CartEntry{ProductID: productID, Size: size, Quantity: quantity}); err != nil {
				return nil, err
			}
		}
	} else {
		if err := s.carts.PushEntry(ctx, user, models.CartEntry{ProductID: productID, Size: size, Quantity: quantity}); err != nil {
			return nil, err
		}
	}

	return s.currentCart(ctx, user)
}

// UpdateQuantity overwrites the quantity of an existing entry. Unlike Add it
// is an absolute set, not additive.
func (s *Service) UpdateQuantity(ctx context.Context, user, productID primitive.ObjectID, size string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "quantity must be at least 1")
	}

	if _, err := s.validate(ctx, productID, size, quantity); err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperr.New(apperr.NotFound, "cart not found")
	}
	if cart.Entry(productID, size) == nil {
		return nil, apperr.New(apperr.NotFound, "item not found in cart")
	}

	if _, err := s.carts.SetEntryQuantity(ctx, user, productID, size, quantity); err != nil {
		return nil, err
	}
	return s.currentCart(ctx, user)
}

// Remove deletes entries for productID. An empty size removes every size of
// that product; a specific size removes only the exact match.
func (s *Service) Remove(ctx context.Context, user, productID primitive.ObjectID, size string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperr.New(apperr.NotFound, "cart not found")
	}

	matched := false
	for _, e := range cart.Products {
		if e.ProductID == productID && (size == "" || e.Size == size) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, apperr.New(apperr.NotFound, "item not found in cart")
	}

	if err := s.carts.PullEntries(ctx, user, productID, size); err != nil {
		return nil, err
	}
	return s.currentCart(ctx, user)
}

// ResolvedEntry is a cart entry joined with its product details. Product is
// nil when the product has been deleted since the entry was added.
type ResolvedEntry struct {
	models.CartEntry
	Product *models.Product `json:"product"`
}

// View is the cart as returned to clients, with product details resolved.
type View struct {
	User     primitive.ObjectID `json:"user"`
	Products []ResolvedEntry    `json:"products"`
}

// Get returns the user's cart with product details resolved. A missing cart
// yields an empty view, not an error.
func (s *Service) Get(ctx context.Context, user primitive.ObjectID) (*View, error) {
	view := &View{User: user, Products: []ResolvedEntry{}}
	cart, err := s.carts.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return view, nil
	}
	for _, e := range cart.Products {
		resolved := ResolvedEntry{CartEntry: e}
		if p, err := s.products.Get(ctx, e.ProductID); err == nil {
			resolved.Product = p
		} else if apperr.KindOf(err) != apperr.NotFound {
			return nil, err
		}
		view.Products = append(view.Products, resolved)
	}
	return view, nil
}

func (s *Service) currentCart(ctx context.Context, user primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &models.Cart{User: user, Products: []models.CartEntry{}}, nil
	}
	return cart, nil
}
