package stock

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore applies stock deltas with $inc so concurrent writers on the same
// product never lose an update.
type MongoStore struct {
	Products *mongo.Collection
}

func (s *MongoStore) IncStock(ctx context.Context, productID primitive.ObjectID, delta int) error {
	res, err := s.Products.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$inc": bson.M{"stock": delta}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
