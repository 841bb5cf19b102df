package user

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleNone       Role = ""
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole accepts only the known roles. The empty string clears a role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleNone, RoleInstructor, RoleAdmin:
		return r, nil
	}
	return RoleNone, fmt.Errorf("role must be one of [%s %s] or empty", RoleInstructor, RoleAdmin)
}

type User struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
	Photo string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Role  Role               `json:"role,omitempty" bson:"role,omitempty"`
}

// UserNew is posted on first sign in. Older clients send user_email.
type UserNew struct {
	Name      string `json:"name"`
	Email     string `json:"email" validate:"required_without=UserEmail,omitempty,email"`
	UserEmail string `json:"user_email" validate:"omitempty,email"`
	Photo     string `json:"photo"`
}

func (n UserNew) Address() string {
	if n.Email != "" {
		return n.Email
	}
	return n.UserEmail
}

type RoleUp struct {
	Role string `json:"role"`
}

// Instructor is an instructor ranked by the students enrolled in their
// approved classes.
type Instructor struct {
	User     `bson:",inline"`
	Students int `json:"students" bson:"students"`
	Classes  int `json:"classes" bson:"classes"`
}

type RoleView struct {
	Admin      bool `json:"admin"`
	Instructor bool `json:"instructor"`
}
