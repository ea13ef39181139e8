// Package memstore provides in-memory implementations of the store
// interfaces with the same error semantics as mongostore. Used by tests and
// local development.
package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/apperr"
	"github.com/AdityaGupta2791/E-com/models"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (s *ProductStore) Insert(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = *p
	return nil
}

func (s *ProductStore) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	return &p, nil
}

func (s *ProductStore) List(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *ProductStore) Replace(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return apperr.New(apperr.NotFound, "product not found")
	}
	s.products[p.ID] = *p
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return apperr.New(apperr.NotFound, "product not found")
	}
	delete(s.products, id)
	return nil
}

func (s *ProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return apperr.New(apperr.NotFound, "product not found")
	}
	if p.Stock < qty {
		return apperr.New(apperr.InsufficientStock, "not enough stock")
	}
	p.Stock -= qty
	s.products[id] = p
	return nil
}

func (s *ProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return apperr.New(apperr.NotFound, "product not found")
	}
	p.Stock += qty
	s.products[id] = p
	return nil
}

type CartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (s *CartStore) Get(_ context.Context, user primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[user]
	if !ok {
		return nil, nil
	}
	cp := *cart
	cp.Products = append([]models.CartEntry(nil), cart.Products...)
	return &cp, nil
}

func (s *CartStore) IncrementEntry(_ context.Context, user, productID primitive.ObjectID, size string, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[user]
	if !ok {
		return false, nil
	}
	for i := range cart.Products {
		if cart.Products[i].ProductID == productID && cart.Products[i].Size == size {
			cart.Products[i].Quantity += qty
			return true, nil
		}
	}
	return false, nil
}

func (s *CartStore) PushEntry(_ context.Context, user primitive.ObjectID, entry models.CartEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[user]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), User: user}
		s.carts[user] = cart
	}
	cart.Products = append(cart.Products, entry)
	return nil
}

func (s *CartStore) SetEntryQuantity(_ context.Context, user, productID primitive.ObjectID, size string, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[user]
	if !ok {
		return false, nil
	}
	for i := range cart.Products {
		if cart.Products[i].ProductID == productID && cart.Products[i].Size == size {
			cart.Products[i].Quantity = qty
			return true, nil
		}
	}
	return false, nil
}

func (s *CartStore) PullEntries(_ context.Context, user, productID primitive.ObjectID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[user]
	if !ok {
		return nil
	}
	kept := cart.Products[:0]
	for _, e := range cart.Products {
		if e.ProductID == productID && (size == "" || e.Size == size) {
			continue
		}
		kept = append(kept, e)
	}
	cart.Products = kept
	return nil
}

func (s *CartStore) Delete(_ context.Context, user primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, user)
	return nil
}

type OrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

func (s *OrderStore) Insert(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders = append(s.orders, *o)
	return nil
}

func (s *OrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *OrderStore) ListByUser(_ context.Context, user primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	// newest first
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].User == user {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

func (s *OrderStore) ListAll(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, s.orders[i])
	}
	return out, nil
}

type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *UserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) Get(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type MergeLogStore struct {
	mu     sync.Mutex
	merged map[primitive.ObjectID]map[string]bool
}

func NewMergeLogStore() *MergeLogStore {
	return &MergeLogStore{merged: make(map[primitive.ObjectID]map[string]bool)}
}

func (s *MergeLogStore) Merged(_ context.Context, user primitive.ObjectID) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.merged[user]))
	for id := range s.merged[user] {
		out[id] = true
	}
	return out, nil
}

func (s *MergeLogStore) Record(_ context.Context, user primitive.ObjectID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.merged[user] == nil {
		s.merged[user] = make(map[string]bool)
	}
	s.merged[user][entryID] = true
	return nil
}

func (s *MergeLogStore) Remove(_ context.Context, user primitive.ObjectID, entryIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range entryIDs {
		delete(s.merged[user], id)
	}
	return nil
}
