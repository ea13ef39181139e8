package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Image       string             `bson:"image" json:"image" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category" validate:"required,oneof=men women kid"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Stock       int                `bson:"stock" json:"stock" validate:"min=0"`
	NewPrice    float64            `bson:"new_price" json:"new_price" validate:"required,gt=0"`
	OldPrice    float64            `bson:"old_price" json:"old_price" validate:"required,gt=0"`
	Date        time.Time          `bson:"date" json:"date"`
	Available   bool               `bson:"available" json:"available"`
}

// HasSize reports whether size is one of the product's purchasable variants.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
