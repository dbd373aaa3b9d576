package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context) ([]models.Schedule, error)
	ListByRoom(ctx context.Context, roomID int64) ([]models.Schedule, error)
	Create(ctx context.Context, write models.ScheduleWrite) (*models.Schedule, error)
	Update(ctx context.Context, id int64, write models.ScheduleWrite) (*models.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

// ScheduleHandler exposes schedule endpoints. GET /schedules/{id} takes a room
// id while PATCH and DELETE take a schedule id.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List all schedules
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules)
}

// ListByRoom godoc
// @Summary List schedules of a room
// @Tags Schedules
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) ListByRoom(c *gin.Context) {
	roomID, ok := pathID(c)
	if !ok {
		return
	}
	schedules, err := h.service.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules)
}

// Create godoc
// @Summary Create schedule
// @Description Slot keys time_7_9_am .. time_3_5_pm carry teacher ids, *_course keys carry course ids; null leaves a slot unassigned
// @Tags Schedules
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var write models.ScheduleWrite
	if !bindJSON(c, &write) {
		return
	}
	schedule, err := h.service.Create(c.Request.Context(), write)
	if err != nil {
		response.Error(c, err)
		return
	}
	auditCreated(c, schedule.ID)
	response.Created(c, schedule)
}

// Update godoc
// @Summary Update schedule
// @Description Only keys present in the body change; an explicit null clears a slot half
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedules/{id} [patch]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var write models.ScheduleWrite
	if !bindJSON(c, &write) {
		return
	}
	schedule, err := h.service.Update(c.Request.Context(), id, write)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// Delete godoc
// @Summary Delete schedule
// @Tags Schedules
// @Param id path int true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
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
