package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/identity"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

// ContextIdentityKey is the gin context key storing the verified identity.
const ContextIdentityKey = "identity"

type tokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

// RequireToken protects routes by requiring a valid bearer token.
func RequireToken(verifier tokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "Authorization token missing"))
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug("token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set(ContextIdentityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by RequireToken.
func IdentityFrom(c *gin.Context) *identity.Identity {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return nil
	}
	id, _ := value.(*identity.Identity)
	return id
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
