package identity

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
)

// authClient is the subset of *auth.Client used here.
type authClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseVerifier checks Firebase ID tokens.
type FirebaseVerifier struct {
	client       authClient
	checkRevoked bool
}

// NewFirebaseVerifier wraps a Firebase auth client. With checkRevoked set every
// verification also consults the revocation state, costing one extra lookup.
func NewFirebaseVerifier(client authClient, checkRevoked bool) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, checkRevoked: checkRevoked}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	verify := v.client.VerifyIDToken
	if v.checkRevoked {
		verify = v.client.VerifyIDTokenAndCheckRevoked
	}
	tok, err := verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	email, _ := tok.Claims["email"].(string)
	return &Identity{
		UID:       tok.UID,
		Email:     email,
		IssuedAt:  time.Unix(tok.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(tok.Expires, 0).UTC(),
	}, nil
}

func (v *FirebaseVerifier) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := v.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens for %s: %w", uid, err)
	}
	return nil
}
