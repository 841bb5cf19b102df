package class

import (
	"context"
	"errors"
	"fmt"

	"github.com/irsalhamdi/globe-lingual/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const popularLimit = 6

func Create(ctx context.Context, db *mongo.Database, c Class) (primitive.ObjectID, error) {
	res, err := db.Collection(database.Classes).InsertOne(ctx, c)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("inserting class: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func Fetch(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (Class, error) {
	var c Class
	err := db.Collection(database.Classes).FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Class{}, database.ErrNotFound
	}
	if err != nil {
		return Class{}, fmt.Errorf("finding class: %w", err)
	}
	return c, nil
}

func List(ctx context.Context, db *mongo.Database) ([]Class, error) {
	return find(ctx, db, bson.M{})
}

func ListApproved(ctx context.Context, db *mongo.Database) ([]Class, error) {
	return find(ctx, db, bson.M{"class_status": Approved})
}

func ListByInstructor(ctx context.Context, db *mongo.Database, email string) ([]Class, error) {
	return find(ctx, db, bson.M{"instructor_email": email})
}

// ListPopular returns the approved classes with the most enrolled students.
// Ties keep insertion order.
func ListPopular(ctx context.Context, db *mongo.Database) ([]Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "enrolled_students", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(popularLimit)

	return find(ctx, db, bson.M{"class_status": Approved}, opts)
}

func find(ctx context.Context, db *mongo.Database, filter bson.M, opts ...*options.FindOptions) ([]Class, error) {
	cur, err := db.Collection(database.Classes).Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("finding classes: %w", err)
	}

	classes := []Class{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decoding classes: %w", err)
	}
	return classes, nil
}

func UpdateStatus(ctx context.Context, db *mongo.Database, id primitive.ObjectID, st Status, review string) (database.UpdateResult, error) {
	return update(ctx, db, id, bson.M{"$set": bson.M{"class_status": st, "admin_review": review}})
}

func UpdateReview(ctx context.Context, db *mongo.Database, id primitive.ObjectID, review string) (database.UpdateResult, error) {
	return update(ctx, db, id, bson.M{"$set": bson.M{"admin_review": review}})
}

// IncrementEnrolled adds one student to the class. A missing class is not
// an error: the result reports zero matches.
func IncrementEnrolled(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (database.UpdateResult, error) {
	res, err := db.Collection(database.Classes).UpdateByID(ctx, id, bson.M{"$inc": bson.M{"enrolled_students": 1}})
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("incrementing enrolled students: %w", err)
	}
	return database.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func update(ctx context.Context, db *mongo.Database, id primitive.ObjectID, upd bson.M) (database.UpdateResult, error) {
	res, err := db.Collection(database.Classes).UpdateByID(ctx, id, upd)
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("updating class: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.UpdateResult{}, database.ErrNotFound
	}
	return database.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}
