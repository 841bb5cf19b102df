package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/irsalhamdi/globe-lingual/database"
	"github.com/irsalhamdi/globe-lingual/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

const Banner = "Globe Lingual is running"

func HandleLiveness() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.RespondText(w, Banner, http.StatusOK)
	}
}

func HandleReadiness(db *mongo.Database, timeout time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		if err := database.StatusCheck(ctx, db.Client()); err != nil {
			return weberr.NewError(fmt.Errorf("pinging database: %w", err), "database not ready", http.StatusServiceUnavailable)
		}
		metrics.ObserveDBPing(time.Since(start))

		return web.Respond(ctx, w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}
