package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
	"github.com/irsalhamdi/globe-lingual/rate"
)

// RateLimit rejects clients, keyed by remote host, that exceed the limiter.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				return weberr.TooManyRequests(errors.New("too many requests"), weberr.WithFields(map[string]interface{}{
					"client": host,
				}))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
