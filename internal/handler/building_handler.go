package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/pkg/response"
)

type buildingService interface {
	List(ctx context.Context) ([]models.Building, error)
	Create(ctx context.Context, req models.BuildingRequest, actorID int64) (*models.Building, error)
	Update(ctx context.Context, id int64, req models.BuildingRequest) (*models.Building, error)
	Delete(ctx context.Context, id int64) error
}

// BuildingHandler serves buildings as bare payloads.
type BuildingHandler struct {
	service buildingService
}

func NewBuildingHandler(svc buildingService) *BuildingHandler {
	return &BuildingHandler{service: svc}
}

// List godoc
// @Summary List buildings
// @Tags Buildings
// @Produce json
// @Success 200 {array} models.Building
// @Router /buildings [get]
func (h *BuildingHandler) List(c *gin.Context) {
	buildings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, buildings)
}

// Create godoc
// @Summary Create building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param payload body models.BuildingRequest true "Building payload"
// @Success 201 {object} models.BuildingEnvelope
// @Failure 400 {object} response.Envelope
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *gin.Context) {
	var req models.BuildingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	auditCreated(c, b.ID)
	response.Raw(c, http.StatusCreated, models.BuildingEnvelope{Building: *b})
}

// Update godoc
// @Summary Update building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param id path int true "Building ID"
// @Param payload body models.BuildingRequest true "Building payload"
// @Success 200 {object} models.BuildingEnvelope
// @Failure 404 {object} response.Envelope
// @Router /buildings/{id} [patch]
func (h *BuildingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.BuildingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, models.BuildingEnvelope{Building: *b})
}

// Delete godoc
// @Summary Delete building
// @Tags Buildings
// @Param id path int true "Building ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
