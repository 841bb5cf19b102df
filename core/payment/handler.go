package payment

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/irsalhamdi/globe-lingual/metrics"
	"github.com/irsalhamdi/globe-lingual/validate"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleCreateIntent authorizes a card charge for price. Nothing is written
// to the database.
func HandleCreateIntent(strp *stripecl.API, currency string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var req IntentRequest
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		amount, err := Amount(req.Price)
		if err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest, weberr.WithFields(map[string]interface{}{
				"price": req.Price,
			}))
		}

		params := &stripe.PaymentIntentParams{
			Amount:             stripe.Int64(amount),
			Currency:           stripe.String(currency),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		}
		params.Context = ctx

		pi, err := strp.PaymentIntents.New(params)
		if err != nil {
			return fmt.Errorf("creating stripe payment intent of %d: %w", amount, err)
		}
		metrics.PaymentIntents.Inc()

		return web.Respond(ctx, w, IntentResponse{ClientSecret: pi.ClientSecret}, http.StatusOK)
	}
}

func parseNew(pn PaymentNew, now time.Time) (Payment, error) {
	if err := validate.Check(pn); err != nil {
		return Payment{}, err
	}

	uid, err := validate.ObjectID(pn.UserID)
	if err != nil {
		return Payment{}, fmt.Errorf("user_id: %w", err)
	}
	scid, err := validate.ObjectID(pn.SelectedClassID)
	if err != nil {
		return Payment{}, fmt.Errorf("selected_class_id: %w", err)
	}
	cid, err := validate.ObjectID(pn.ClassID)
	if err != nil {
		return Payment{}, fmt.Errorf("class_id: %w", err)
	}

	date := pn.Date
	if date.IsZero() {
		date = now
	}

	return Payment{
		UserID:          uid,
		Email:           pn.Email,
		SelectedClassID: scid,
		ClassID:         cid,
		ClassName:       pn.ClassName,
		TransactionID:   pn.TransactionID,
		Date:            date.UTC(),
		Price:           pn.Price,
	}, nil
}

// HandleFinalize stores a completed payment and enrolls the user.
func HandleFinalize(db *mongo.Database, transactional bool) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn PaymentNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		p, err := parseNew(pn, time.Now())
		if err != nil {
			return weberr.InvalidInput(err)
		}

		res, err := Finalize(ctx, db, transactional, p)
		if err != nil {
			metrics.Enrollments.WithLabelValues("failed").Inc()

			body := FinalizeFailure{
				Error:   true,
				Message: "the payment could not be fully recorded",
				Result:  res,
			}
			return weberr.Wrap(err,
				weberr.WithResponse(body, http.StatusInternalServerError),
				weberr.WithFields(map[string]interface{}{
					"transaction_id": p.TransactionID,
					"inserted":       res.Insert.InsertedID != nil,
					"incremented":    res.Update.ModifiedCount,
					"removed":        res.Delete.DeletedCount,
				}),
			)
		}
		metrics.Enrollments.WithLabelValues("completed").Inc()

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

func HandleListEnrolled(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		uid, err := validate.ObjectID(web.Param(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		ec, err := ListEnrolled(ctx, db, uid)
		if err != nil {
			return fmt.Errorf("listing enrolled classes of user[%s]: %w", uid.Hex(), err)
		}

		return web.Respond(ctx, w, ec, http.StatusOK)
	}
}

func HandleListHistory(db *mongo.Database) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		uid, err := validate.ObjectID(web.Param(r, "id"))
		if err != nil {
			return weberr.InvalidInput(err)
		}

		he, err := ListHistory(ctx, db, uid)
		if err != nil {
			return fmt.Errorf("listing payments of user[%s]: %w", uid.Hex(), err)
		}

		return web.Respond(ctx, w, he, http.StatusOK)
	}
}
