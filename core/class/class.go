package class

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Denied   Status = "denied"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case Pending, Approved, Denied:
		return st, nil
	}
	return "", fmt.Errorf("status must be one of [%s %s %s]", Pending, Approved, Denied)
}

type Class struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClassName        string             `json:"class_name" bson:"class_name"`
	ClassImage       string             `json:"class_image,omitempty" bson:"class_image,omitempty"`
	InstructorName   string             `json:"instructor_name" bson:"instructor_name"`
	InstructorEmail  string             `json:"instructor_email" bson:"instructor_email"`
	Price            float64            `json:"price" bson:"price"`
	TotalSeats       int                `json:"total_seats" bson:"total_seats"`
	EnrolledStudents int                `json:"enrolled_students" bson:"enrolled_students"`
	Status           Status             `json:"class_status" bson:"class_status"`
	AdminReview      string             `json:"admin_review" bson:"admin_review"`
}

type ClassNew struct {
	ClassName        string  `json:"class_name" validate:"required"`
	ClassImage       string  `json:"class_image"`
	InstructorName   string  `json:"instructor_name"`
	InstructorEmail  string  `json:"instructor_email" validate:"omitempty,email"`
	Price            float64 `json:"price" validate:"gte=0"`
	TotalSeats       int     `json:"total_seats" validate:"gte=0"`
	EnrolledStudents int     `json:"enrolled_students" validate:"gte=0"`
	Status           string  `json:"class_status" validate:"omitempty,oneof=pending approved denied"`
	AdminReview      string  `json:"admin_review"`
}

type StatusUp struct {
	Status string `json:"status"`
	Review string `json:"review"`
}

type ReviewUp struct {
	Review string `json:"review"`
}
