package claims

import (
	"context"
	"errors"
)

// Claims are the verified contents of a bearer token. Email identifies the
// caller for role gates; Raw keeps whatever else the issuer embedded.
type Claims struct {
	Email string
	Raw   map[string]interface{}
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("claim value missing from context")
	}
	return v, nil
}

// IsUser reports whether the authenticated caller owns email.
func IsUser(ctx context.Context, email string) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Email != "" && c.Email == email
}
