package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionExpiry picks the expiry for a session created from grant at now.
//
// Order of preference: the token's own exp claim when the token is a JWT, then the
// exchange's expires_in, then fallback.
func SessionExpiry(grant Grant, now time.Time, fallback time.Duration) time.Time {
	if exp, ok := TokenExpiry(grant.AccessToken); ok {
		return exp
	}
	if grant.ExpiresIn > 0 {
		return now.Add(time.Duration(grant.ExpiresIn) * time.Second)
	}
	return now.Add(fallback)
}

// TokenExpiry reads the exp claim from a JWT access token without verifying its signature.
// The token is only inspected to size the local session; the content API remains the
// authority on whether it is valid.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
