package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/models"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
	"github.com/noah-isme/sma-room-console/pkg/response"
)

const dateLayout = "2006-01-02"

type submitService interface {
	List(ctx context.Context, filter models.SubmitFilter) (*models.SubmitPage, error)
}

// SubmitHandler lists room usage records.
type SubmitHandler struct {
	service submitService
}

func NewSubmitHandler(svc submitService) *SubmitHandler {
	return &SubmitHandler{service: svc}
}

// List godoc
// @Summary List submits
// @Tags Submits
// @Produce json
// @Param page query int false "Page number"
// @Param user_id query int false "User filter"
// @Param start_date query string false "Inclusive start (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end (YYYY-MM-DD)"
// @Success 200 {object} models.SubmitPage
// @Failure 400 {object} response.Envelope
// @Router /submits [get]
func (h *SubmitHandler) List(c *gin.Context) {
	filter, fields := parseSubmitFilter(c)
	if len(fields) > 0 {
		response.Error(c, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid submit filter"), fields))
		return
	}
	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, page)
}

func parseSubmitFilter(c *gin.Context) (models.SubmitFilter, map[string]string) {
	var filter models.SubmitFilter
	fields := map[string]string{}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields["page"] = "page must be a positive integer"
		}
		filter.Page = page
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := models.ParseID(raw)
		if err != nil {
			fields["user_id"] = "user_id must be a positive integer"
		} else {
			filter.UserID = &id
		}
	}
	for key, target := range map[string]**time.Time{"start_date": &filter.StartDate, "end_date": &filter.EndDate} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			fields[key] = key + " must be YYYY-MM-DD"
			continue
		}
		*target = &t
	}
	return filter, fields
}
