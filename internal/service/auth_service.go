package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/identity"
)

// AuthService exchanges provider tokens and ends sessions.
type AuthService struct {
	verifier identity.Verifier
	logger   *zap.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(verifier identity.Verifier, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{verifier: verifier, logger: logger}
}

// Login returns the provider token unchanged. Clients send it as the bearer
// token on mutating requests; verification happens there.
func (s *AuthService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	token := strings.TrimSpace(req.IDToken)
	if token == "" {
		return nil, appErrors.Validation("idToken is required", appErrors.FieldError{Field: "idToken", Message: "is required"})
	}
	return &dto.LoginResponse{Token: token}, nil
}

// Logout revokes every refresh token of uid.
func (s *AuthService) Logout(ctx context.Context, uid string) error {
	if uid == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "Invalid or expired token")
	}
	if err := s.verifier.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("failed to revoke refresh tokens", zap.String("uid", uid), zap.Error(err))
		return appErrors.Internal(err, "failed to log out")
	}
	s.logger.Info("session revoked", zap.String("uid", uid))
	return nil
}
