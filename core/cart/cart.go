package cart

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Selection is a class a user intends to pay for.
type Selection struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	SelectedClassID primitive.ObjectID `json:"selected_class_id" bson:"selected_class_id"`
}

type SelectionNew struct {
	UserID          string `json:"user_id" validate:"required"`
	SelectedClassID string `json:"selected_class_id" validate:"required"`
}
