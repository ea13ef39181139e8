package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartEntry is one (product, size, quantity) line in a cart. A cart holds at
// most one entry per (productId, size) pair.
type CartEntry struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId" validate:"required"`
	Size      string             `bson:"size" json:"size" validate:"required"`
	Quantity  int                `bson:"quantity" json:"quantity" validate:"required,min=1"`
}

// Cart is the server-side cart, keyed uniquely by its owning user. It is
// created lazily on first add and deleted when an order is placed from it.
type Cart struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Products []CartEntry        `bson:"products" json:"products"`
}

// Entry returns the entry matching (productID, size), or nil.
func (c *Cart) Entry(productID primitive.ObjectID, size string) *CartEntry {
	for i := range c.Products {
		if c.Products[i].ProductID == productID && c.Products[i].Size == size {
			return &c.Products[i]
		}
	}
	return nil
}
