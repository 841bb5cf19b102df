package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

// Logger writes a started and a completed line per request. Completed lines
// of rejected requests are logged at warn level, server failures at error.
func Logger(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			log := log

			if rid := ContextRequestID(ctx); rid != "" {
				log = log.WithField("req_id", rid)
			}

			fields := logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"remoteaddr": r.RemoteAddr,
			}
			if cr := mux.CurrentRoute(r); cr != nil {
				if tpl, err := cr.GetPathTemplate(); err == nil {
					fields["route"] = tpl
				}
			}
			log = log.WithFields(fields)

			log.Info("started")
			startTime := time.Now().UTC()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			status := lw.Status()
			log = log.WithFields(logrus.Fields{
				"statuscode": status,
				"bytes":      lw.BytesWritten(),
				"since":      time.Since(startTime).Nanoseconds(),
			})

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("completed")
			case status >= http.StatusBadRequest:
				log.Warn("completed")
			default:
				log.Info("completed")
			}
			return err
		}
		return h
	}
	return m
}
