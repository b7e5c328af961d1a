package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a locally issued token.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 tokens signed with a shared secret. It stands in
// for the hosted provider in local development; revocations live in memory.
type JWTVerifier struct {
	secret       []byte
	checkRevoked bool
	now          func() time.Time

	mu            sync.RWMutex
	revokedBefore map[string]time.Time
}

// NewJWTVerifier returns a verifier for secret.
func NewJWTVerifier(secret string, checkRevoked bool) *JWTVerifier {
	return &JWTVerifier{
		secret:        []byte(secret),
		checkRevoked:  checkRevoked,
		now:           time.Now,
		revokedBefore: make(map[string]time.Time),
	}
}

// Issue signs a token for uid valid for ttl.
func (v *JWTVerifier) Issue(uid, email string, ttl time.Duration) (string, error) {
	issuedAt := v.now().UTC()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	id := &Identity{UID: claims.Subject, Email: claims.Email, ExpiresAt: claims.ExpiresAt.Time.UTC()}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if v.checkRevoked && v.revoked(id.UID, id.IssuedAt) {
		return nil, fmt.Errorf("%w: token revoked", ErrInvalidToken)
	}
	return id, nil
}

// RevokeRefreshTokens invalidates every token for uid issued before now.
func (v *JWTVerifier) RevokeRefreshTokens(_ context.Context, uid string) error {
	if uid == "" {
		return fmt.Errorf("uid required")
	}
	v.mu.Lock()
	v.revokedBefore[uid] = v.now().UTC().Truncate(time.Second)
	v.mu.Unlock()
	return nil
}

func (v *JWTVerifier) revoked(uid string, issuedAt time.Time) bool {
	v.mu.RLock()
	cutoff, ok := v.revokedBefore[uid]
	v.mu.RUnlock()
	return ok && issuedAt.Before(cutoff)
}
