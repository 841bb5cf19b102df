package user

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

func FetchByEmail(ctx context.Context, db *mongo.Database, email string) (User, error) {
	var u User
	err := db.Collection(database.Users).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, database.ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("finding user by email: %w", err)
	}
	return u, nil
}

func FetchByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (User, error) {
	var u User
	err := db.Collection(database.Users).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, database.ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("finding user by id: %w", err)
	}
	return u, nil
}

func Create(ctx context.Context, db *mongo.Database, u User) (primitive.ObjectID, error) {
	res, err := db.Collection(database.Users).InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("inserting user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// UpdateRole overwrites the role. RoleNone removes the field.
func UpdateRole(ctx context.Context, db *mongo.Database, id primitive.ObjectID, role Role) (database.UpdateResult, error) {
	update := bson.M{"$set": bson.M{"role": role}}
	if role == RoleNone {
		update = bson.M{"$unset": bson.M{"role": ""}}
	}

	res, err := db.Collection(database.Users).UpdateByID(ctx, id, update)
	if err != nil {
		return database.UpdateResult{}, fmt.Errorf("updating role: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.UpdateResult{}, database.ErrNotFound
	}

	return database.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func List(ctx context.Context, db *mongo.Database) ([]User, error) {
	return find(ctx, db, bson.M{})
}

func ListByRole(ctx context.Context, db *mongo.Database, role Role) ([]User, error) {
	return find(ctx, db, bson.M{"role": role})
}

func find(ctx context.Context, db *mongo.Database, filter bson.M) ([]User, error) {
	cur, err := db.Collection(database.Users).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}

	users := []User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

// ListPopular ranks instructors by the students enrolled across their
// approved classes, best first.
func ListPopular(ctx context.Context, db *mongo.Database) ([]Instructor, error) {
	cur, err := db.Collection(database.Classes).Aggregate(ctx, popularPipeline(popularLimit))
	if err != nil {
		return nil, fmt.Errorf("aggregating popular instructors: %w", err)
	}

	ins := []Instructor{}
	if err := cur.All(ctx, &ins); err != nil {
		return nil, fmt.Errorf("decoding popular instructors: %w", err)
	}
	return ins, nil
}

func popularPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"class_status": "approved"}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$instructor_email",
			"students": bson.M{"$sum": "$enrolled_students"},
			"classes":  bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.Users,
			"localField":   "_id",
			"foreignField": "email",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$match", Value: bson.M{"user.role": RoleInstructor}}},
		{{Key: "$sort", Value: bson.D{{Key: "students", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$replaceRoot", Value: bson.M{
			"newRoot": bson.M{"$mergeObjects": bson.A{
				"$user",
				bson.M{"students": "$students", "classes": "$classes"},
			}},
		}}},
	}
}
