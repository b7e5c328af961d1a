package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SignedURLSigner creates and validates download tokens bound to an object path.
type SignedURLSigner struct {
	secret []byte
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret.
func NewSignedURLSigner(secret string) *SignedURLSigner {
	return &SignedURLSigner{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Generate returns a token authorising reads of path until expiresAt.
func (s *SignedURLSigner) Generate(path string, expiresAt time.Time) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path required")
	}
	if len(s.secret) == 0 {
		return "", fmt.Errorf("signing secret missing")
	}
	ts := fmt.Sprintf("%d", expiresAt.Unix())
	return ts + "." + s.sign(path, ts), nil
}

// Parse validates token for path and returns its expiry.
func (s *SignedURLSigner) Parse(token, path string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid token format")
	}
	ts, signature := parts[0], parts[1]

	expUnix, err := parseUnix(ts)
	if err != nil {
		return time.Time{}, err
	}
	expiresAt := time.Unix(expUnix, 0)

	if !hmac.Equal([]byte(s.sign(path, ts)), []byte(signature)) {
		return time.Time{}, fmt.Errorf("invalid token signature")
	}
	if s.now().After(expiresAt) {
		return time.Time{}, fmt.Errorf("token expired")
	}
	return expiresAt, nil
}

func (s *SignedURLSigner) sign(path, ts string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(path + "|" + ts))
	return hex.EncodeToString(mac.Sum(nil))
}

func parseUnix(raw string) (int64, error) {
	var ts int64
	_, err := fmt.Sscanf(raw, "%d", &ts)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp")
	}
	return ts, nil
}
