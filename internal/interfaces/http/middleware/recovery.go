package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// Recovery converts handler panics into 500 responses with the standard
// error envelope instead of dropped connections.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	log := logger.Named("recovery")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panicked",
					logging.String("path", c.Request.URL.Path),
					logging.Any("panic", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    apperrors.ErrCodeInternal,
						"message": "internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}
