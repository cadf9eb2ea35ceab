package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/pkg/codes"
)

// HealthCheck checks one dependency. A failing critical check turns the service
// down (503); a failing non-critical one only degrades it.
type HealthCheck struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{Status: codes.StatusOK, Checks: make(map[string]string, len(h.checks))}
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			slog.WarnContext(ctx, "Health check failed", slog.String("check", check.Name), slog.Any("error", err))
			resp.Checks[check.Name] = codes.StatusDown
			if check.Critical {
				resp.Status = codes.StatusDown
			} else if resp.Status == codes.StatusOK {
				resp.Status = codes.StatusDegraded
			}
			continue
		}
		resp.Checks[check.Name] = codes.StatusOK
	}

	status := http.StatusOK
	if resp.Status == codes.StatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
