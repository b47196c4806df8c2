package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/service"
)

type errorResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	entry := logrus.WithFields(logrus.Fields{"rid": c.GetString(requestIDKey), "status": statusCode})
	if statusCode >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Debug(message)
	}
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}

// abortWithError answers with the status that matches the error kind.
func abortWithError(c *gin.Context, err error) {
	newErrorResponse(c, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrReferentialBlock):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDecode):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func pathID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		newErrorResponse(c, http.StatusBadRequest, "invalid id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}
