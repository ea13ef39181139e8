package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values for an order.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Fulfillment status values for an order. Transitions happen outside this
// service.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderLineItem is an immutable snapshot of a product at order-creation time.
// Name and Price are frozen here and never recomputed, even if the product
// changes later. ProductID is a reference, not an authority.
type OrderLineItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Size      string             `bson:"size" json:"size"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

type Address struct {
	FullName     string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	AddressLine1 string `bson:"addressLine1,omitempty" json:"addressLine1,omitempty"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city,omitempty" json:"city,omitempty"`
	State        string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode   string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country      string `bson:"country,omitempty" json:"country,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Order is created once at checkout and never deleted. Only the status fields
// may change afterwards.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Receipt       string             `bson:"receipt" json:"receipt"`
	Products      []OrderLineItem    `bson:"products" json:"products"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Address       Address            `bson:"address" json:"address"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus   string             `bson:"orderStatus" json:"orderStatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
