package cart

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/irsalhamdi/globe-lingual/database"
	"github.com/irsalhamdi/globe-lingual/validate"
	"go.mongodb.org/mongo-driver/mongo"
)

func parseNew(sn SelectionNew) (Selection, error) {
	if err := validate.Check(sn); err != nil {
		return Selection{}, err
	}

	uid, err := validate.ObjectID(sn.UserID)
	if err != nil {
		return Selection{}, fmt.Errorf("user_id: %w", err)
	}

	cid, err := validate.ObjectID(sn.SelectedClassID)
	if err != nil {
		return Selection{}, fmt.Errorf("selected_class_id: %w", err)
	}

	return Selection{UserID: uid, SelectedClassID: cid}, nil
}

func HandleCreate(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var sn SelectionNew
		if err := web.Decode(w, r, &sn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		s, err := parseNew(sn)
		if err != nil {
			return weberr.InvalidInput(err)
		}

		id, err := Create(ctx, db, s)
		if err != nil {
			return fmt.Errorf("adding class[%s] to the cart of user[%s]: %w", sn.SelectedClassID, sn.UserID, err)
		}

		return web.Respond(ctx, w, database.InsertResult{InsertedID: id}, http.StatusCreated)
	}
}

func HandleDelete(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := validate.ObjectID(web.Param(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		res, err := Delete(ctx, db, id)
		if err != nil {
			return fmt.Errorf("removing selection[%s]: %w", id.Hex(), err)
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleListByUser(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		uid, err := validate.ObjectID(web.Param(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		sel, err := ListByUser(ctx, db, uid)
		if err != nil {
			return fmt.Errorf("listing cart of user[%s]: %w", uid.Hex(), err)
		}

		return web.Respond(ctx, w, sel, http.StatusOK)
	}
}
