// Package catalog owns product records: admin CRUD, public reads and the
// stock counters the order workflow draws from.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/store"
)

const cacheTTL = 10 * time.Minute

type Service struct {
	products store.ProductStore
	cache    Cache
}

// NewService builds the catalog service. cache may be nil to disable the
// read cache.
func NewService(products store.ProductStore, cache Cache) *Service {
	return &Service{products: products, cache: cache}
}

func productKey(id primitive.ObjectID) string {
	return "catalog:product:" + id.Hex()
}

func (s *Service) Create(ctx context.Context, p *models.Product) error {
	p.Available = true
	return s.products.Insert(ctx, p)
}

// Get resolves a product, read-through cached. Every mutation on this
// service invalidates the key, so cached reads track the latest serviced
// write; only out-of-band database writes can go stale, for at most the TTL.
// The conditional stock decrement stays the authority on stock either way.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, productKey(id)); err == nil && raw != "" {
			var p models.Product
			if json.Unmarshal([]byte(raw), &p) == nil {
				return &p, nil
			}
		}
	}
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if buf, err := json.Marshal(p); err == nil {
			if err := s.cache.Set(ctx, productKey(id), string(buf), cacheTTL); err != nil {
				slog.Warn("catalog: cache set failed", "product", id.Hex(), "err", err)
			}
		}
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// UpdateParams carries the optional fields of a partial product update. Nil
// pointers leave the stored value untouched; a non-nil Sizes replaces the
// whole size set.
type UpdateParams struct {
	Name        *string
	Image       *string
	Description *string
	Category    *string
	Stock       *int
	NewPrice    *float64
	OldPrice    *float64
	Sizes       []string
	Available   *bool
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, params UpdateParams) (*models.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Image != nil {
		p.Image = *params.Image
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.NewPrice != nil {
		p.NewPrice = *params.NewPrice
	}
	if params.OldPrice != nil {
		p.OldPrice = *params.OldPrice
	}
	if params.Sizes != nil {
		p.Sizes = params.Sizes
	}
	if params.Available != nil {
		p.Available = *params.Available
	}
	if err := s.products.Replace(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	if err := s.products.DecrementStock(ctx, id, qty); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	if err := s.products.IncrementStock(ctx, id, qty); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productKey(id)); err != nil {
		slog.Warn("catalog: cache invalidation failed", "product", id.Hex(), "err", err)
	}
}
