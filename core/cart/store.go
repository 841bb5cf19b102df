package cart

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/globe-lingual/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create stores the selection as is. Duplicates and seat counts are not
// checked.
func Create(ctx context.Context, db *mongo.Database, s Selection) (primitive.ObjectID, error) {
	res, err := db.Collection(database.Selections).InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("inserting selection: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func Delete(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (database.DeleteResult, error) {
	res, err := db.Collection(database.Selections).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return database.DeleteResult{}, fmt.Errorf("deleting selection: %w", err)
	}
	return database.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func ListByUser(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]Selection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := db.Collection(database.Selections).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding selections: %w", err)
	}

	sel := []Selection{}
	if err := cur.All(ctx, &sel); err != nil {
		return nil, fmt.Errorf("decoding selections: %w", err)
	}
	return sel, nil
}
