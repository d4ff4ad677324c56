package handler

import (
	"context"
	"errors"
	"net/http"

	"pobackend/internal/service"
	"pobackend/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors to HTTP statuses. Raw error text is only
// exposed when verbose is set.
func writeError(c *gin.Context, err error, verbose bool) {
	status, message := http.StatusInternalServerError, "Internal server error"

	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		status, message = http.StatusBadRequest, ve.Message
	case errors.Is(err, service.ErrNotFound):
		status, message = http.StatusNotFound, "Purchase order not found"
	case errors.Is(err, service.ErrSheetsNotConfigured):
		status, message = http.StatusServiceUnavailable, "Google Sheets integration is not configured"
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "Request timed out"
	default:
		if ae, ok := service.AsAppendError(err); ok {
			status, message = http.StatusBadGateway, ae.Message()
		} else if errors.Is(err, service.ErrStorage) {
			message = "Database error, please try again"
		}
	}

	if verbose {
		c.JSON(status, response.Error(status, message, err.Error()))
		return
	}
	c.JSON(status, response.Error(status, message))
}
