package user

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

// HandleShowByEmail responds with the stored user or null.
func HandleShowByEmail(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")

		u, err := FetchByEmail(ctx, db, email)
		if errors.Is(err, database.ErrNotFound) {
			return web.Respond(ctx, w, nil, http.StatusOK)
		}
		if err != nil {
			return fmt.Errorf("fetching user[%s]: %w", email, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}

// HandleShowRole tells the caller which dashboards it may open.
func HandleShowRole(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")
		if !claims.IsUser(ctx, email) {
			return weberr.Forbidden(fmt.Errorf("caller asked for the role of %s", email))
		}

		u, err := FetchByEmail(ctx, db, email)
		if errors.Is(err, database.ErrNotFound) {
			return web.Respond(ctx, w, RoleView{}, http.StatusOK)
		}
		if err != nil {
			return fmt.Errorf("fetching user[%s]: %w", email, err)
		}

		rv := RoleView{
			Admin:      u.Role == RoleAdmin,
			Instructor: u.Role == RoleInstructor,
		}
		return web.Respond(ctx, w, rv, http.StatusOK)
	}
}

// HandleCreate registers a user on first sign in. The existence check and
// the insert are separate operations, so two concurrent sign ins of a new
// email can both succeed.
func HandleCreate(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nu UserNew
		if err := web.Decode(w, r, &nu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(nu); err != nil {
			return weberr.InvalidInput(err)
		}

		email := nu.Address()

		_, err := FetchByEmail(ctx, db, email)
		switch {
		case err == nil:
			return weberr.Conflict(
				fmt.Errorf("user[%s] already exists", email),
				"user already exists",
				weberr.WithFields(map[string]interface{}{"email": email}),
			)
		case !errors.Is(err, database.ErrNotFound):
			return fmt.Errorf("checking user[%s]: %w", email, err)
		}

		u := User{
			Name:  nu.Name,
			Email: email,
			Photo: nu.Photo,
		}

		id, err := Create(ctx, db, u)
		if err != nil {
			return fmt.Errorf("creating user[%s]: %w", email, err)
		}

		return web.Respond(ctx, w, database.InsertResult{InsertedID: id}, http.StatusCreated)
	}
}

func HandleUpdateRole(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := validate.ObjectID(web.Query(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		var up RoleUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		role, err := ParseRole(up.Role)
		if err != nil {
			return weberr.InvalidInput(err)
		}

		res, err := UpdateRole(ctx, db, id, role)
		if errors.Is(err, database.ErrNotFound) {
			return weberr.NotFound(fmt.Errorf("user[%s] not found", id.Hex()))
		}
		if err != nil {
			return fmt.Errorf("updating role of user[%s]: %w", id.Hex(), err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleList(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		users, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing users: %w", err)
		}

		return web.Respond(ctx, w, users, http.StatusOK)
	}
}

func HandleListInstructors(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		users, err := ListByRole(ctx, db, RoleInstructor)
		if err != nil {
			return fmt.Errorf("listing instructors: %w", err)
		}

		return web.Respond(ctx, w, users, http.StatusOK)
	}
}

func HandleListPopular(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ins, err := ListPopular(ctx, db)
		if err != nil {
			return fmt.Errorf("listing popular instructors: %w", err)
		}

		return web.Respond(ctx, w, ins, http.StatusOK)
	}
}
