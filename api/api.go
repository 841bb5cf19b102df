package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/globe-lingual/api/middleware"
	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/core/auth"
	"github.com/irsalhamdi/globe-lingual/core/cart"
	"github.com/irsalhamdi/globe-lingual/core/class"
	"github.com/irsalhamdi/globe-lingual/core/health"
	"github.com/irsalhamdi/globe-lingual/core/payment"
	"github.com/irsalhamdi/globe-lingual/core/token"
	"github.com/irsalhamdi/globe-lingual/core/user"
	"github.com/irsalhamdi/globe-lingual/metrics"
	"github.com/irsalhamdi/globe-lingual/rate"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"go.mongodb.org/mongo-driver/mongo"
)

type APIConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *mongo.Database
	Transactions     bool
	Stripe           *stripecl.API
	Currency         string
	Secret           string
	TokenTTL         time.Duration
	Limiter          *rate.Limiter
	ReadinessTimeout time.Duration
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Metrics())
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	readiness := cfg.ReadinessTimeout
	if readiness == 0 {
		readiness = time.Second
	}

	authen := auth.Authenticate(cfg.Secret)
	admin := auth.Admin(cfg.DB)
	instructor := auth.Instructor(cfg.DB)

	var limit web.Middleware
	if cfg.Limiter != nil {
		limit = middleware.RateLimit(cfg.Limiter)
	}

	a.Handle(http.MethodGet, "/", health.HandleLiveness())
	a.Handle(http.MethodGet, "/healthz", health.HandleReadiness(cfg.DB, readiness))
	a.Router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	a.Handle(http.MethodPost, "/jwt", token.HandleToken(cfg.Secret, cfg.TokenTTL), limit)

	a.Handle(http.MethodGet, "/user/{email}/role", user.HandleShowRole(cfg.DB), authen)
	a.Handle(http.MethodGet, "/user/{email}", user.HandleShowByEmail(cfg.DB), authen)
	a.Handle(http.MethodPost, "/user", user.HandleCreate(cfg.DB), limit)
	a.Handle(http.MethodPatch, "/user", user.HandleUpdateRole(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users", user.HandleList(cfg.DB), authen, admin)
	a.Handle(http.MethodGet, "/instructors", user.HandleListInstructors(cfg.DB))
	a.Handle(http.MethodGet, "/popular-instructors", user.HandleListPopular(cfg.DB))

	a.Handle(http.MethodPost, "/add-class", class.HandleCreate(cfg.DB), authen, instructor)
	a.Handle(http.MethodGet, "/instructor-classes/{email}", class.HandleListByInstructor(cfg.DB), authen, instructor)
	a.Handle(http.MethodGet, "/classes", class.HandleListApproved(cfg.DB))
	a.Handle(http.MethodGet, "/popular-classes", class.HandleListPopular(cfg.DB))
	a.Handle(http.MethodGet, "/admin-classes", class.HandleList(cfg.DB), authen, admin)
	a.Handle(http.MethodPatch, "/class", class.HandleUpdateStatus(cfg.DB), authen, admin)
	a.Handle(http.MethodPatch, "/edit-review", class.HandleUpdateReview(cfg.DB), authen, admin)
	a.Handle(http.MethodGet, "/selected-class-user/{id}", class.HandleShow(cfg.DB), authen)

	a.Handle(http.MethodPost, "/selected-class", cart.HandleCreate(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/delete-class-from-array/{id}", cart.HandleDelete(cfg.DB), authen)
	a.Handle(http.MethodGet, "/user-classes/{id}", cart.HandleListByUser(cfg.DB), authen)

	a.Handle(http.MethodGet, "/enrolled-classes/{id}", payment.HandleListEnrolled(cfg.DB), authen)
	a.Handle(http.MethodGet, "/payment/{id}", payment.HandleListHistory(cfg.DB), authen)
	a.Handle(http.MethodPost, "/create-payment-intent", payment.HandleCreateIntent(cfg.Stripe, cfg.Currency), authen)
	a.Handle(http.MethodPost, "/payments", payment.HandleFinalize(cfg.DB, cfg.Transactions), authen)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
