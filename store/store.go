// Package store declares the persistence interfaces the services are built
// against. mongostore implements them over MongoDB; memstore implements them
// in memory for tests.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/models"
)

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Replace(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DecrementStock subtracts qty from the product's stock as a single
	// conditional update: it only applies when stock >= qty, so stock can
	// never go negative. Fails with NotFound when the product is gone and
	// InsufficientStock when the condition does not hold.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error

	// IncrementStock adds qty back; used to compensate a partially applied
	// order.
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type CartStore interface {
	// Get returns the user's cart, or (nil, nil) when none exists. Absence
	// of a cart is not a failure state.
	Get(ctx context.Context, user primitive.ObjectID) (*models.Cart, error)

	// IncrementEntry adds qty to the entry matching (productID, size) in a
	// single find-and-modify. Returns false when no such entry exists.
	IncrementEntry(ctx context.Context, user, productID primitive.ObjectID, size string, qty int) (bool, error)

	// PushEntry appends a new entry, creating the cart if absent.
	PushEntry(ctx context.Context, user primitive.ObjectID, entry models.CartEntry) error

	// SetEntryQuantity overwrites the quantity of the matching entry.
	// Returns false when no such entry exists.
	SetEntryQuantity(ctx context.Context, user, productID primitive.ObjectID, size string, qty int) (bool, error)

	// PullEntries removes entries for productID. An empty size removes every
	// size of that product; otherwise only the exact (productID, size) match.
	PullEntries(ctx context.Context, user, productID primitive.ObjectID, size string) error

	// Delete drops the user's cart entirely. Deleting an absent cart is not
	// an error.
	Delete(ctx context.Context, user primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	// Delete exists only to compensate a failed placement; committed orders
	// are never deleted.
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// GetByEmail returns (nil, nil) when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// MergeLogStore records which guest-cart entries have already been merged for
// a user, so a retried merge after a partial failure skips entries it already
// applied instead of double-counting them.
type MergeLogStore interface {
	Merged(ctx context.Context, user primitive.ObjectID) (map[string]bool, error)
	Record(ctx context.Context, user primitive.ObjectID, entryID string) error
	// Remove forgets entry ids, keeping the per-user log from growing without
	// bound once the client has dropped the corresponding guest entries.
	Remove(ctx context.Context, user primitive.ObjectID, entryIDs []string) error
}
