package class

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/irsalhamdi/globe-lingual/core/claims"
	"github.com/irsalhamdi/globe-lingual/database"
	"github.com/irsalhamdi/globe-lingual/validate"
	"go.mongodb.org/mongo-driver/mongo"
)

// New builds the stored class. Classes without a status start pending and
// classes without an instructor belong to the caller.
func New(cn ClassNew, callerEmail string) Class {
	c := Class{
		ClassName:        cn.ClassName,
		ClassImage:       cn.ClassImage,
		InstructorName:   cn.InstructorName,
		InstructorEmail:  cn.InstructorEmail,
		Price:            cn.Price,
		TotalSeats:       cn.TotalSeats,
		EnrolledStudents: cn.EnrolledStudents,
		Status:           Status(cn.Status),
		AdminReview:      cn.AdminReview,
	}

	if c.Status == "" {
		c.Status = Pending
	}
	if c.InstructorEmail == "" {
		c.InstructorEmail = callerEmail
	}
	return c
}

func HandleCreate(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var cn ClassNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.InvalidInput(err)
		}

		id, err := Create(ctx, db, New(cn, clm.Email))
		if err != nil {
			return fmt.Errorf("creating class for %s: %w", clm.Email, err)
		}

		return web.Respond(ctx, w, database.InsertResult{InsertedID: id}, http.StatusCreated)
	}
}

// HandleShow responds with the class or null.
func HandleShow(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := validate.ObjectID(web.Param(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		c, err := Fetch(ctx, db, id)
		if errors.Is(err, database.ErrNotFound) {
			return web.Respond(ctx, w, nil, http.StatusOK)
		}
		if err != nil {
			return fmt.Errorf("fetching class[%s]: %w", id.Hex(), err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleList(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		classes, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing classes: %w", err)
		}

		return web.Respond(ctx, w, classes, http.StatusOK)
	}
}

func HandleListApproved(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		classes, err := ListApproved(ctx, db)
		if err != nil {
			return fmt.Errorf("listing approved classes: %w", err)
		}

		return web.Respond(ctx, w, classes, http.StatusOK)
	}
}

func HandleListPopular(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		classes, err := ListPopular(ctx, db)
		if err != nil {
			return fmt.Errorf("listing popular classes: %w", err)
		}

		return web.Respond(ctx, w, classes, http.StatusOK)
	}
}

// HandleListByInstructor only lets instructors list their own classes.
func HandleListByInstructor(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")
		if !claims.IsUser(ctx, email) {
			return weberr.Forbidden(fmt.Errorf("caller asked for the classes of %s", email))
		}

		classes, err := ListByInstructor(ctx, db, email)
		if err != nil {
			return fmt.Errorf("listing classes of %s: %w", email, err)
		}

		return web.Respond(ctx, w, classes, http.StatusOK)
	}
}

func HandleUpdateStatus(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := validate.ObjectID(web.Query(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		var up StatusUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		st, err := ParseStatus(up.Status)
		if err != nil {
			return weberr.InvalidInput(err)
		}

		res, err := UpdateStatus(ctx, db, id, st, up.Review)
		if errors.Is(err, database.ErrNotFound) {
			return weberr.NotFound(fmt.Errorf("class[%s] not found", id.Hex()))
		}
		if err != nil {
			return fmt.Errorf("updating status of class[%s]: %w", id.Hex(), err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleUpdateReview(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := validate.ObjectID(web.Query(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		var up ReviewUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		res, err := UpdateReview(ctx, db, id, up.Review)
		if errors.Is(err, database.ErrNotFound) {
			return weberr.NotFound(fmt.Errorf("class[%s] not found", id.Hex()))
		}
		if err != nil {
			return fmt.Errorf("updating review of class[%s]: %w", id.Hex(), err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}
