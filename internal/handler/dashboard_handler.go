package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/middleware"
	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/pkg/response"
)

type dashboardService interface {
	Counts(ctx context.Context) (*models.DashboardCounts, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Counts godoc
// @Summary Aggregate counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardCounts
// @Router /dashboard [get]
func (h *DashboardHandler) Counts(c *gin.Context) {
	counts, hit, err := h.service.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.Raw(c, http.StatusOK, counts)
}
