package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/apperr"
	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/services/cart"
	"github.com/AdityaGupta2791/E-com/services/catalog"
	"github.com/AdityaGupta2791/E-com/store"
	"github.com/AdityaGupta2791/E-com/store/memstore"
)

type fixture struct {
	svc      *Service
	cartSvc  *cart.Service
	orders   *memstore.OrderStore
	carts    *memstore.CartStore
	products *memstore.ProductStore
	user     primitive.ObjectID
}

func newFixture(t *testing.T, trustClientTotal bool) *fixture {
	t.Helper()
	products := memstore.NewProductStore()
	carts := memstore.NewCartStore()
	orders := memstore.NewOrderStore()
	return &fixture{
		svc:      NewService(orders, carts, products, trustClientTotal),
		cartSvc:  cart.NewService(carts, products, memstore.NewMergeLogStore()),
		orders:   orders,
		carts:    carts,
		products: products,
		user:     primitive.NewObjectID(),
	}
}

func (f *fixture) seedProduct(t *testing.T, name string, stock int, price float64, sizes ...string) primitive.ObjectID {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Image:    "http://img.local/p.png",
		Category: "women",
		Sizes:    sizes,
		Stock:    stock,
		NewPrice: price,
		OldPrice: price + 50,
	}
	require.NoError(t, f.products.Insert(context.Background(), p))
	return p.ID
}

func TestPlaceWithEmptyCartAndNoItems(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Place(context.Background(), f.user, PlaceRequest{})
	require.Error(t, err)
	assert.Equal(t, apperr.EmptyOrder, apperr.KindOf(err))

	orders, err := f.orders.ListByUser(context.Background(), f.user)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceFromCartSnapshotsAndCommits(t *testing.T) {
	f := newFixture(t, false)
	pid := f.seedProduct(t, "Summer Dress", 5, 100, "M", "L")
	ctx := context.Background()

	_, err := f.cartSvc.Add(ctx, f.user, pid, "M", 2)
	require.NoError(t, err)

	placed, err := f.svc.Place(ctx, f.user, PlaceRequest{})
	require.NoError(t, err)

	require.Len(t, placed.Products, 1)
	line := placed.Products[0]
	assert.Equal(t, pid, line.ProductID)
	assert.Equal(t, "M", line.Size)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "Summer Dress", line.Name)
	assert.Equal(t, 100.0, line.Price)
	assert.Equal(t, 200.0, placed.TotalAmount)
	assert.Equal(t, models.PaymentPending, placed.PaymentStatus)
	assert.Equal(t, models.OrderPending, placed.OrderStatus)
	assert.NotEmpty(t, placed.Receipt)

	// stock was decremented and the cart deleted
	p, err := f.products.Get(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)

	cartDoc, err := f.carts.Get(ctx, f.user)
	require.NoError(t, err)
	assert.Nil(t, cartDoc)
}

func TestPlaceSnapshotSurvivesProductChanges(t *testing.T) {
	f := newFixture(t, false)
	pid := f.seedProduct(t, "Summer Dress", 5, 100, "M")
	ctx := context.Background()

	placed, err := f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{{ProductID: pid, Size: "M", Quantity: 1}},
	})
	require.NoError(t, err)

	// mutate the product after the order
	p, err := f.products.Get(ctx, pid)
	require.NoError(t, err)
	p.Name = "Renamed"
	p.NewPrice = 999
	require.NoError(t, f.products.Replace(ctx, p))

	orders, err := f.svc.ListForUser(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
	assert.Equal(t, "Summer Dress", orders[0].Products[0].Name)
	assert.Equal(t, 100.0, orders[0].Products[0].Price)
}

func TestPlaceValidation(t *testing.T) {
	f := newFixture(t, false)
	pid := f.seedProduct(t, "Summer Dress", 2, 100, "M")
	ctx := context.Background()

	_, err := f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{{ProductID: primitive.NewObjectID(), Size: "M", Quantity: 1}},
	})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{{ProductID: pid, Size: "XL", Quantity: 1}},
	})
	assert.Equal(t, apperr.InvalidSize, apperr.KindOf(err))

	_, err = f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{{ProductID: pid, Size: "M", Quantity: 3}},
	})
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	_, err = f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{{ProductID: pid, Size: "M", Quantity: 0}},
	})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	// nothing was persisted and no stock was taken
	orders, err := f.orders.ListByUser(ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, orders)
	p, err := f.products.Get(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

func TestPlaceIgnoresClientTotalByDefault(t *testing.T) {
	f := newFixture(t, false)
	pid := f.seedProduct(t, "Summer Dress", 5, 100, "M")
	total := 1.0

	placed, err := f.svc.Place(context.Background(), f.user, PlaceRequest{
		Items:       []ItemRequest{{ProductID: pid, Size: "M", Quantity: 2}},
		TotalAmount: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, placed.TotalAmount)
}

func TestPlaceTrustsClientTotalWhenConfigured(t *testing.T) {
	f := newFixture(t, true)
	pid := f.seedProduct(t, "Summer Dress", 5, 100, "M")
	total := 150.0

	placed, err := f.svc.Place(context.Background(), f.user, PlaceRequest{
		Items:       []ItemRequest{{ProductID: pid, Size: "M", Quantity: 2}},
		TotalAmount: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, placed.TotalAmount)
}

// Two items of the same under-stocked product each pass the per-item check,
// but the conditional decrement catches the combined demand and the whole
// placement rolls back.
func TestPlaceCrossItemOverCommitmentRollsBack(t *testing.T) {
	f := newFixture(t, false)
	pid := f.seedProduct(t, "Summer Dress", 3, 100, "M", "L")
	ctx := context.Background()

	_, err := f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{
			{ProductID: pid, Size: "M", Quantity: 2},
			{ProductID: pid, Size: "L", Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	// the persisted order was compensated away and stock restored
	orders, err := f.orders.ListByUser(ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, orders)
	p, err := f.products.Get(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

// failingDecrementStore fails DecrementStock for one product to simulate
// stock being taken by a concurrent order between validation and commit.
type failingDecrementStore struct {
	store.ProductStore
	failFor primitive.ObjectID
}

func (s *failingDecrementStore) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	if id == s.failFor {
		return apperr.New(apperr.InsufficientStock, "not enough stock")
	}
	return s.ProductStore.DecrementStock(ctx, id, qty)
}

func TestPlaceCompensatesPartialStockDecrement(t *testing.T) {
	products := memstore.NewProductStore()
	carts := memstore.NewCartStore()
	orders := memstore.NewOrderStore()
	user := primitive.NewObjectID()
	ctx := context.Background()

	first := &models.Product{Name: "Jacket", Image: "x", Category: "men", Sizes: []string{"M"}, Stock: 5, NewPrice: 200, OldPrice: 250}
	second := &models.Product{Name: "Scarf", Image: "x", Category: "men", Sizes: []string{"M"}, Stock: 5, NewPrice: 50, OldPrice: 80}
	require.NoError(t, products.Insert(ctx, first))
	require.NoError(t, products.Insert(ctx, second))

	svc := NewService(orders, carts, &failingDecrementStore{ProductStore: products, failFor: second.ID}, false)

	_, err := svc.Place(ctx, user, PlaceRequest{
		Items: []ItemRequest{
			{ProductID: first.ID, Size: "M", Quantity: 2},
			{ProductID: second.ID, Size: "M", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	// the first item's decrement was compensated
	p, err := products.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)

	// no order survived
	all, err := orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// failingCartStore rejects cart deletion; the order must still commit.
type failingCartStore struct {
	store.CartStore
}

func (s *failingCartStore) Delete(context.Context, primitive.ObjectID) error {
	return apperr.New(apperr.Unavailable, "cart store unreachable")
}

func TestPlaceCommitsWhenCartClearFails(t *testing.T) {
	products := memstore.NewProductStore()
	carts := memstore.NewCartStore()
	orders := memstore.NewOrderStore()
	user := primitive.NewObjectID()
	ctx := context.Background()

	p := &models.Product{Name: "Jacket", Image: "x", Category: "men", Sizes: []string{"M"}, Stock: 5, NewPrice: 200, OldPrice: 250}
	require.NoError(t, products.Insert(ctx, p))

	svc := NewService(orders, &failingCartStore{CartStore: carts}, products, false)

	placed, err := svc.Place(ctx, user, PlaceRequest{
		Items: []ItemRequest{{ProductID: p.ID, Size: "M", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotNil(t, placed)

	all, err := orders.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

// stubCache is a minimal in-process catalog.Cache.
type stubCache struct {
	data map[string]string
}

func (c *stubCache) Get(_ context.Context, key string) (string, error) { return c.data[key], nil }

func (c *stubCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *stubCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// Placing an order takes stock through the catalog service, so a cached
// product read reflects the decrement immediately instead of serving the
// pre-order stock until the cache entry expires.
func TestPlaceRefreshesCachedProductReads(t *testing.T) {
	products := memstore.NewProductStore()
	carts := memstore.NewCartStore()
	orders := memstore.NewOrderStore()
	user := primitive.NewObjectID()
	ctx := context.Background()

	p := &models.Product{Name: "Jacket", Image: "x", Category: "men", Sizes: []string{"M"}, Stock: 5, NewPrice: 200, OldPrice: 250}
	require.NoError(t, products.Insert(ctx, p))

	catalogSvc := catalog.NewService(products, &stubCache{data: make(map[string]string)})
	svc := NewService(orders, carts, catalogSvc, false)

	// warm the cache
	got, err := catalogSvc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Stock)

	_, err = svc.Place(ctx, user, PlaceRequest{
		Items: []ItemRequest{{ProductID: p.ID, Size: "M", Quantity: 2}},
	})
	require.NoError(t, err)

	got, err = catalogSvc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

// A rolled-back placement re-increments stock through the same path, so the
// compensating increment also drops the cached read.
func TestCompensationRefreshesCachedProductReads(t *testing.T) {
	products := memstore.NewProductStore()
	carts := memstore.NewCartStore()
	orders := memstore.NewOrderStore()
	user := primitive.NewObjectID()
	ctx := context.Background()

	first := &models.Product{Name: "Jacket", Image: "x", Category: "men", Sizes: []string{"M"}, Stock: 5, NewPrice: 200, OldPrice: 250}
	second := &models.Product{Name: "Scarf", Image: "x", Category: "men", Sizes: []string{"M"}, Stock: 5, NewPrice: 50, OldPrice: 80}
	require.NoError(t, products.Insert(ctx, first))
	require.NoError(t, products.Insert(ctx, second))

	catalogSvc := catalog.NewService(
		&failingDecrementStore{ProductStore: products, failFor: second.ID},
		&stubCache{data: make(map[string]string)},
	)
	svc := NewService(orders, carts, catalogSvc, false)

	got, err := catalogSvc.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Stock)

	_, err = svc.Place(ctx, user, PlaceRequest{
		Items: []ItemRequest{
			{ProductID: first.ID, Size: "M", Quantity: 2},
			{ProductID: second.ID, Size: "M", Quantity: 1},
		},
	})
	require.Error(t, err)

	got, err = catalogSvc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestListForUserNewestFirst(t *testing.T) {
	f := newFixture(t, false)
	pid := f.seedProduct(t, "Summer Dress", 10, 100, "M")
	ctx := context.Background()

	first, err := f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{{ProductID: pid, Size: "M", Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.svc.Place(ctx, f.user, PlaceRequest{
		Items: []ItemRequest{{ProductID: pid, Size: "M", Quantity: 1}},
	})
	require.NoError(t, err)

	orders, err := f.svc.ListForUser(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}
