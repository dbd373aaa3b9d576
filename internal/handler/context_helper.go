package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/middleware"
	"github.com/noah-isme/sma-room-console/internal/models"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
	"github.com/noah-isme/sma-room-console/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.CurrentUser(c)
}

func actorID(c *gin.Context) int64 {
	if claims := claimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// pathID parses the :id param, answering 400 itself when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid id"))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return false
	}
	return true
}

func auditCreated(c *gin.Context, id int64) {
	middleware.SetAuditResourceID(c, strconv.FormatInt(id, 10))
}
