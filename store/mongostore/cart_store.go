package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AdityaGupta2791/E-com/apperr"
	"github.com/AdityaGupta2791/E-com/models"
)

// CartStore keeps one cart document per user. Entry mutations are single
// find-and-modify operations keyed by (user, productId, size), so two
// concurrent writers cannot lose each other's update.
type CartStore struct {
	col *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{col: db.Collection("carts")}
}

func (s *CartStore) Get(ctx context.Context, user primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.col.FindOne(ctx, bson.M{"user": user}).Decode(&cart); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.Unavailable, "failed to fetch cart", err)
	}
	return &cart, nil
}

func (s *CartStore) IncrementEntry(ctx context.Context, user, productID primitive.ObjectID, size string, qty int) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"user": user, "products": bson.M{"$elemMatch": bson.M{"productId": productID, "size": size}}},
		bson.M{"$inc": bson.M{"products.$.quantity": qty}},
	)
	if err != nil {
		return false, apperr.Wrap(apperr.Unavailable, "failed to update cart", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *CartStore) PushEntry(ctx context.Context, user primitive.ObjectID, entry models.CartEntry) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user": user},
		bson.M{"$push": bson.M{"products": entry}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to update cart", err)
	}
	return nil
}

func (s *CartStore) SetEntryQuantity(ctx context.Context, user, productID primitive.ObjectID, size string, qty int) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"user": user, "products": bson.M{"$elemMatch": bson.M{"productId": productID, "size": size}}},
		bson.M{"$set": bson.M{"products.$.quantity": qty}},
	)
	if err != nil {
		return false, apperr.Wrap(apperr.Unavailable, "failed to update cart", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *CartStore) PullEntries(ctx context.Context, user, productID primitive.ObjectID, size string) error {
	cond := bson.M{"productId": productID}
	if size != "" {
		cond["size"] = size
	}
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user": user},
		bson.M{"$pull": bson.M{"products": cond}},
	)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to update cart", err)
	}
	return nil
}

func (s *CartStore) Delete(ctx context.Context, user primitive.ObjectID) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"user": user}); err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to delete cart", err)
	}
	return nil
}
