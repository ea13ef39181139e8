package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AdityaGupta2791/E-com/apperr"
	"github.com/AdityaGupta2791/E-com/models"
)

type ProductStore struct {
	col *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{col: db.Collection("products")}
}

func (s *ProductStore) Insert(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to insert product", err)
	}
	return nil
}

func (s *ProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Unavailable, "failed to fetch product", err)
	}
	return &p, nil
}

func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "failed to list products", err)
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "failed to decode products", err)
	}
	return products, nil
}

func (s *ProductStore) Replace(ctx context.Context, p *models.Product) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to update product", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

func (s *ProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to decrement stock", err)
	}
	if res.MatchedCount == 0 {
		// Either the product vanished or the stock guard rejected the write.
		n, err := s.col.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return apperr.Wrap(apperr.Unavailable, "failed to decrement stock", err)
		}
		if n == 0 {
			return apperr.New(apperr.NotFound, "product not found")
		}
		return apperr.New(apperr.InsufficientStock, "not enough stock")
	}
	return nil
}

func (s *ProductStore) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to increment stock", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}
