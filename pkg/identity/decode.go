package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode reads the claims of a token without checking its signature. Clients
// use it to decide whether a stored session is still worth sending.
func Decode(token string) (*Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := &Identity{}
	if sub, err := claims.GetSubject(); err == nil {
		id.UID = sub
	}
	if id.UID == "" {
		id.UID, _ = claims["user_id"].(string)
	}
	id.Email, _ = claims["email"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time.UTC()
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		id.IssuedAt = iat.Time.UTC()
	}
	return id, nil
}

// IsExpired reports whether token is unusable at now. Empty, malformed and
// exp-less tokens count as expired.
func IsExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	id, err := Decode(token)
	if err != nil || id.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(id.ExpiresAt)
}
