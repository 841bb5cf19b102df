package payment

import (
	"time"

	"github.com/irsalhamdi/globe-lingual/database"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a charge the provider already authorized. Payments are
// never updated or deleted.
type Payment struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	SelectedClassID primitive.ObjectID `json:"selected_class_id" bson:"selected_class_id"`
	ClassID         primitive.ObjectID `json:"class_id" bson:"class_id"`
	ClassName       string             `json:"class_name,omitempty" bson:"class_name,omitempty"`
	TransactionID   string             `json:"transaction_id" bson:"transaction_id"`
	Date            time.Time          `json:"date" bson:"date"`
	Price           float64            `json:"price" bson:"price"`
}

// PaymentNew is posted once the provider confirmed the charge.
// SelectedClassID names the class, ClassID names the cart entry it settles.
type PaymentNew struct {
	UserID          string    `json:"user_id" validate:"required"`
	Email           string    `json:"email" validate:"omitempty,email"`
	SelectedClassID string    `json:"selected_class_id" validate:"required"`
	ClassID         string    `json:"class_id" validate:"required"`
	ClassName       string    `json:"class_name"`
	TransactionID   string    `json:"transaction_id" validate:"required"`
	Date            time.Time `json:"date"`
	Price           float64   `json:"price" validate:"gte=0"`
}

type IntentRequest struct {
	Price float64 `json:"price"`
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// FinalizeResult reports every step of a finalize on its own so a partial
// failure is visible to the caller.
type FinalizeResult struct {
	Insert database.InsertResult `json:"insertResult"`
	Update database.UpdateResult `json:"updateResult"`
	Delete database.DeleteResult `json:"deleteResult"`
}

type FinalizeFailure struct {
	Error   bool           `json:"error"`
	Message string         `json:"message"`
	Result  FinalizeResult `json:"result"`
}

type EnrolledClass struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	ClassName       string             `json:"class_name" bson:"class_name"`
	ClassImage      string             `json:"class_image,omitempty" bson:"class_image,omitempty"`
	InstructorName  string             `json:"instructor_name" bson:"instructor_name"`
	InstructorEmail string             `json:"instructor_email" bson:"instructor_email"`
	Price           float64            `json:"price" bson:"price"`
	Date            time.Time          `json:"date" bson:"date"`
}

type HistoryEntry struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	TransactionID  string             `json:"transaction_id" bson:"transaction_id"`
	Date           time.Time          `json:"date" bson:"date"`
	Price          float64            `json:"price" bson:"price"`
	ClassName      string             `json:"class_name" bson:"class_name"`
	InstructorName string             `json:"instructor_name" bson:"instructor_name"`
}
