package token

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/globe-lingual/api/web"
	"github.com/irsalhamdi/globe-lingual/api/weberr"
)

type Response struct {
	Token string `json:"token"`
}

// HandleToken issues a token for whatever identity the client posts. The
// identity is not checked against the user store.
func HandleToken(secret string, ttl time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var payload map[string]interface{}
		if err := web.Decode(w, r, &payload); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		tkn, err := Issue(secret, payload, ttl, time.Now())
		if err != nil {
			return fmt.Errorf("issuing token: %w", err)
		}

		return web.Respond(ctx, w, Response{Token: tkn}, http.StatusOK)
	}
}
