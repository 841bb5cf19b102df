package payment

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/globe-lingual/core/cart"
	"github.com/irsalhamdi/globe-lingual/core/class"
	"github.com/irsalhamdi/globe-lingual/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func Create(ctx context.Context, db *mongo.Database, p Payment) (primitive.ObjectID, error) {
	res, err := db.Collection(database.Payments).InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("inserting payment: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// Finalize records the payment, adds the student to the class and clears
// the cart entry, in that order. With transactional set the three writes
// commit together. Without it every write that succeeded before a failure
// stays, and the returned result shows how far the sequence got.
func Finalize(ctx context.Context, db *mongo.Database, transactional bool, p Payment) (FinalizeResult, error) {
	var res FinalizeResult

	err := database.Transaction(ctx, db, transactional, func(ctx context.Context) error {
		res = FinalizeResult{}

		id, err := Create(ctx, db, p)
		if err != nil {
			return err
		}
		res.Insert = database.InsertResult{InsertedID: id}

		up, err := class.IncrementEnrolled(ctx, db, p.SelectedClassID)
		if err != nil {
			return err
		}
		res.Update = up

		del, err := cart.Delete(ctx, db, p.ClassID)
		if err != nil {
			return err
		}
		res.Delete = del

		return nil
	})

	if err != nil {
		if transactional {
			res = FinalizeResult{}
		}
		return res, fmt.Errorf("finalizing payment[%s]: %w", p.TransactionID, err)
	}
	return res, nil
}

func ListEnrolled(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]EnrolledClass, error) {
	cur, err := db.Collection(database.Payments).Aggregate(ctx, enrolledPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("aggregating enrolled classes: %w", err)
	}

	ec := []EnrolledClass{}
	if err := cur.All(ctx, &ec); err != nil {
		return nil, fmt.Errorf("decoding enrolled classes: %w", err)
	}
	return ec, nil
}

func ListHistory(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]HistoryEntry, error) {
	cur, err := db.Collection(database.Payments).Aggregate(ctx, historyPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("aggregating payment history: %w", err)
	}

	he := []HistoryEntry{}
	if err := cur.All(ctx, &he); err != nil {
		return nil, fmt.Errorf("decoding payment history: %w", err)
	}
	return he, nil
}

func joinClass(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.Classes,
			"localField":   "selected_class_id",
			"foreignField": "_id",
			"as":           "class",
		}}},
		{{Key: "$unwind", Value: "$class"}},
	}
}

func enrolledPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return append(joinClass(userID),
		bson.D{{Key: "$project", Value: bson.M{
			"_id":              "$class._id",
			"class_name":       "$class.class_name",
			"class_image":      "$class.class_image",
			"instructor_name":  "$class.instructor_name",
			"instructor_email": "$class.instructor_email",
			"price":            "$class.price",
			"date":             1,
		}}},
	)
}

func historyPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return append(joinClass(userID),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":             1,
			"transaction_id":  1,
			"date":            1,
			"price":           1,
			"class_name":      "$class.class_name",
			"instructor_name": "$class.instructor_name",
		}}},
	)
}
