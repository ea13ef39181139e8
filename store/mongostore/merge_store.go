package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AdityaGupta2791/E-com/apperr"
)

// MergeLogStore persists the ids of guest-cart entries already merged for a
// user, one document per user.
type MergeLogStore struct {
	col *mongo.Collection
}

func NewMergeLogStore(db *mongo.Database) *MergeLogStore {
	return &MergeLogStore{col: db.Collection("cart_merges")}
}

type mergeLogDoc struct {
	User     primitive.ObjectID `bson:"user"`
	EntryIDs []string           `bson:"entryIds"`
}

func (s *MergeLogStore) Merged(ctx context.Context, user primitive.ObjectID) (map[string]bool, error) {
	var doc mergeLogDoc
	if err := s.col.FindOne(ctx, bson.M{"user": user}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return map[string]bool{}, nil
		}
		return nil, apperr.Wrap(apperr.Unavailable, "failed to read merge log", err)
	}
	merged := make(map[string]bool, len(doc.EntryIDs))
	for _, id := range doc.EntryIDs {
		merged[id] = true
	}
	return merged, nil
}

func (s *MergeLogStore) Record(ctx context.Context, user primitive.ObjectID, entryID string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user": user},
		bson.M{"$addToSet": bson.M{"entryIds": entryID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to record merge log", err)
	}
	return nil
}

func (s *MergeLogStore) Remove(ctx context.Context, user primitive.ObjectID, entryIDs []string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user": user},
		bson.M{"$pullAll": bson.M{"entryIds": entryIDs}},
	)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "failed to prune merge log", err)
	}
	return nil
}
