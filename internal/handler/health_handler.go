package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and readiness.
type HealthHandler struct {
	store       pinger
	serviceName string
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(store pinger, serviceName string) *HealthHandler {
	return &HealthHandler{store: store, serviceName: serviceName}
}

// Health reports the process is up.
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{"service": h.serviceName, "status": "ok"}, "healthy")
}

// Ready reports whether the document store answers.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		response.Error(c, appErrors.Wrap(err, "NOT_READY", 503, "document store unavailable"))
		return
	}
	response.OK(c, gin.H{"service": h.serviceName, "status": "ready"}, "ready")
}
