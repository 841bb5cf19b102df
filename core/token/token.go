package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/irsalhamdi/globe-lingual/core/claims"
)

// Issue signs the caller supplied claims with HS256. exp, iat and jti are
// always set by the issuer and override any client values.
func Issue(secret string, payload map[string]interface{}, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("signing secret is empty")
	}

	mc := jwt.MapClaims{}
	for k, v := range payload {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(ttl))
	mc["jti"] = uuid.NewString()

	tkn, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tkn, nil
}

// Parse verifies signature and expiry and returns the embedded claims.
func Parse(secret string, raw string) (claims.Claims, error) {
	mc := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return claims.Claims{}, fmt.Errorf("parsing token: %w", err)
	}

	email, _ := mc["email"].(string)
	return claims.Claims{Email: email, Raw: mc}, nil
}
