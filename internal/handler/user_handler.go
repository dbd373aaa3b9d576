package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/middleware"
	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/internal/service"
	"github.com/noah-isme/sma-room-console/pkg/response"
)

type userService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type timetableService interface {
	ForUser(ctx context.Context, userID int64) (models.Timetable, bool, error)
}

type exportService interface {
	Timetable(ctx context.Context, userID int64, format string) (*service.ExportResult, error)
}

// UserHandler handles user CRUD and the per-user timetable endpoints.
type UserHandler struct {
	service    userService
	timetables timetableService
	exports    exportService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userService, timetables timetableService, exports exportService) *UserHandler {
	return &UserHandler{service: svc, timetables: timetables, exports: exports}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Create godoc
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body models.CreateUserRequest true "Create user payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	auditCreated(c, user.ID)
	response.Created(c, user)
}

// Update godoc
// @Summary Update user
// @Description Partial update; an omitted or empty password keeps the current one
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param payload body models.UpdateUserRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
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

// Timetable godoc
// @Summary Weekly timetable of a teacher
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.TimetableResponse
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/timetable [get]
func (h *UserHandler) Timetable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	timetable, hit, err := h.timetables.ForUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.Raw(c, http.StatusOK, models.TimetableResponse{Timetable: timetable})
}

// ExportTimetable godoc
// @Summary Download a timetable
// @Tags Users
// @Produce text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "User ID"
// @Param format query string false "csv, pdf or xlsx (default csv)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /users/{id}/timetable/export [get]
func (h *UserHandler) ExportTimetable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.exports.Timetable(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, res.ContentType, res.Payload)
}
