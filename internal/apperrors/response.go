package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var kindStatus = map[Kind]int{
	KindNotFound:            http.StatusNotFound,
	KindConflict:            http.StatusConflict,
	KindUnauthorized:        http.StatusUnauthorized,
	KindValidationFailed:    http.StatusBadRequest,
	KindUpstreamUnavailable: http.StatusBadGateway,
	KindInternal:            http.StatusInternalServerError,
}

// Respond writes the JSON error body for err. Wrapped cause text stays
// server-side; clients only see the kind and the curated message.
func Respond(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status, ok := kindStatus[appErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, ErrorResponse{
			Code:    appErr.Kind.String(),
			Message: appErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    KindInternal.String(),
		Message: "internal server error",
	})
}
