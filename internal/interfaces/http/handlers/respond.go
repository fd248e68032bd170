// Package handlers implements the ranking API endpoints over the pipeline
// service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// errorBody is the standard error envelope.
type errorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// respondError maps an error onto its HTTP status with the standard envelope.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code.HTTPStatus(), gin.H{"error": errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		}})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{
		Code:    apperrors.ErrCodeInternal,
		Message: "internal server error",
	}})
}
