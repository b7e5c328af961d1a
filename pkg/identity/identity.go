// Package identity verifies the bearer tokens issued by the identity provider.
package identity

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidToken is returned for malformed, expired, revoked or unverifiable tokens.
var ErrInvalidToken = errors.New("identity: invalid or expired token")

// Identity is the verified principal behind a token.
type Identity struct {
	UID       string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verifier validates tokens and revokes sessions.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}
